package security

import (
	"crypto/rand"
	"errors"
)

// Unambiguous drops characters that are easy to misread when a temporary
// password is copied from a terminal.
const Unambiguous = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errBadAlphabet    = errors.New("alphabet must hold 1 to 256 bytes")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand. Bytes above the largest multiple of len(alphabet) are
// rejected to avoid modulo bias.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errBadAlphabet
	}

	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, length)
	buffer := make([]byte, length+length/2+8)
	for len(out) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
