package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateRandByteArray returns n cryptographically random bytes.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// GenerateNumericCode returns a random code of exactly n decimal digits,
// left-padded with zeros. Used for self-pickup confirmation codes.
func GenerateNumericCode(n int) string {
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%0*d", n, v)
}

// WipeByteArray zeroes the given slice in place.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
