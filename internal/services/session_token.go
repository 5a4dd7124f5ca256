package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/goutly/internal/security"
)

const (
	DefaultSessionTTL  = 7 * 24 * time.Hour
	RememberSessionTTL = 30 * 24 * time.Hour

	temporaryPasswordLength = 16
)

var (
	ErrSessionTokenMissing      = errors.New("missing session token")
	ErrSessionTokenInvalid      = errors.New("invalid session token")
	ErrSessionTokenExpired      = errors.New("expired session token")
	ErrSessionTokenInvalidState = errors.New("invalid session password state")
)

// SessionClaims binds a session to the password hash it was issued for, so a
// password change or reset revokes every older session.
type SessionClaims struct {
	UserID        uint   `json:"uid"`
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

const sessionIssuer = "goutly"

func BuildSessionToken(secretKey []byte, userID uint, passwordHash string, ttl time.Duration, now time.Time) (string, error) {
	passwordState := PasswordStateFingerprint(passwordHash)
	if passwordState == "" {
		return "", ErrSessionTokenInvalidState
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	claims := SessionClaims{
		UserID:        userID,
		PasswordState: passwordState,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseSessionToken verifies signature, issuer and expiry at now. Only HS256
// is accepted.
func ParseSessionToken(secretKey []byte, rawToken string, now time.Time) (*SessionClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrSessionTokenMissing
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &SessionClaims{}
	_, err := parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return secretKey, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrSessionTokenExpired
	case err != nil, claims.UserID == 0:
		return nil, ErrSessionTokenInvalid
	case strings.TrimSpace(claims.PasswordState) == "":
		return nil, ErrSessionTokenInvalidState
	}
	return claims, nil
}

func PasswordStateFingerprint(passwordHash string) string {
	normalizedHash := strings.TrimSpace(passwordHash)
	if normalizedHash == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("goutly.session.password-state.v1:" + normalizedHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func IsPasswordStateFingerprintMatch(expected string, passwordHash string) bool {
	actual := PasswordStateFingerprint(passwordHash)
	if strings.TrimSpace(expected) == "" || strings.TrimSpace(actual) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

// GenerateTemporaryPassword returns a random password that also satisfies
// ValidatePasswordStrength.
func GenerateTemporaryPassword() (string, error) {
	for {
		value, err := security.RandomString(temporaryPasswordLength, security.Unambiguous)
		if err != nil {
			return "", err
		}
		if ValidatePasswordStrength(value) == nil {
			return value, nil
		}
	}
}
