package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	MaxPasswordBytes = 72
)

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength accepts 8 to 72 byte passwords that mix upper
// case, lower case and digits.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength || len(password) > MaxPasswordBytes {
		return ErrWeakPassword
	}

	var classes uint8
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			classes |= 1
		case unicode.IsLower(char):
			classes |= 2
		case unicode.IsDigit(char):
			classes |= 4
		}
	}
	if classes != 7 {
		return ErrWeakPassword
	}
	return nil
}
