package cryptox

import "errors"

var ErrMalformedCiphertext = errors.New("malformed ciphertext")
