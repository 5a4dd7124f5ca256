package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/services"
)

// SecretReader returns one line typed by the operator after showing prompt.
type SecretReader func(prompt string) (string, error)

// TerminalSecretReader prompts on out and reads from stdin with echo disabled.
func TerminalSecretReader(stdin *os.File, out io.Writer) SecretReader {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		secret, err := readHiddenLine(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return secret, nil
	}
}

// RunCreateUserCommand registers an account from the command line. The
// password is asked twice and must satisfy the same strength rules as the API.
func RunCreateUserCommand(dbPath string, email string, readSecret SecretReader, out io.Writer, logger *logrus.Logger) error {
	normalizedEmail, err := normalizeCommandEmail(email)
	if err != nil {
		return err
	}
	if readSecret == nil {
		return errors.New("password input unavailable")
	}

	password, err := readSecret("Password: ")
	if err != nil {
		return err
	}
	confirmation, err := readSecret("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirmation {
		return errors.New("passwords do not match")
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	auth := services.NewAuthService(db.NewUserRepository(database))
	user, err := auth.Register(normalizedEmail, password)
	switch {
	case errors.Is(err, services.ErrWeakPassword):
		return errors.New("password must be 8 to 72 characters with upper, lower case letters and a digit")
	case errors.Is(err, services.ErrAuthEmailTaken):
		return fmt.Errorf("user %s already exists", normalizedEmail)
	case err != nil:
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(out, "✅ User %s created (id %d)\n", user.Email, user.ID)
	return nil
}
