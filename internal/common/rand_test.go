package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
}

func TestGenerateNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateNumericCode(4)
		require.Len(t, code, 4)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	require.Equal(t, make([]byte, 6), b)
}
