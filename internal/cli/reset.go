package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/services"
)

// RunResetPasswordCommand replaces the account password with a temporary one
// and prints it to out. Existing sessions stop validating once the hash changes.
func RunResetPasswordCommand(dbPath string, email string, out io.Writer, logger *logrus.Logger) error {
	normalizedEmail, err := normalizeCommandEmail(email)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	auth := services.NewAuthService(db.NewUserRepository(database))
	temporaryPassword, err := auth.ResetPassword(normalizedEmail)
	if err != nil {
		if errors.Is(err, services.ErrAuthUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, "✅ Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")

	return nil
}

func normalizeCommandEmail(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("email is required")
	}
	email := services.NormalizeEmail(raw)
	if email == "" {
		return "", fmt.Errorf("invalid email address %q", strings.TrimSpace(raw))
	}
	return email, nil
}
