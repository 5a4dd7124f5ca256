package services

import (
	"errors"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeEmail lowercases and trims raw. It returns "" unless the result
// is a bare address; display-name forms like "Kim <kim@example.com>" fail.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || len(email) > maxEmailLength {
		return ""
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return ""
	}
	return email
}

// Credentials is one sign-up or sign-in attempt.
type Credentials struct {
	Email    string
	Password string
}

func (credentials Credentials) normalized() (Credentials, error) {
	normalized := Credentials{
		Email:    NormalizeEmail(credentials.Email),
		Password: strings.TrimSpace(credentials.Password),
	}
	if normalized.Email == "" || normalized.Password == "" {
		return Credentials{}, ErrAuthCredentialsInvalid
	}
	return normalized, nil
}
