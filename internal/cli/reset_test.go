package cli

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/services"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func staticSecrets(values ...string) SecretReader {
	index := 0
	return func(string) (string, error) {
		if index >= len(values) {
			return "", errors.New("no more input")
		}
		value := values[index]
		index++
		return value, nil
	}
}

func TestRunCreateUserThenResetPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "goutly.db")
	logger := quietLogger()

	var out bytes.Buffer
	if err := RunCreateUserCommand(dbPath, " Patient@Example.com ", staticSecrets("Purine123", "Purine123"), &out, logger); err != nil {
		t.Fatalf("RunCreateUserCommand() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "patient@example.com") {
		t.Fatalf("create output = %q, want normalized email", out.String())
	}

	out.Reset()
	if err := RunResetPasswordCommand(dbPath, "patient@example.com", &out, logger); err != nil {
		t.Fatalf("RunResetPasswordCommand() unexpected error: %v", err)
	}

	var temporaryPassword string
	for _, line := range strings.Split(out.String(), "\n") {
		if value, ok := strings.CutPrefix(line, "Temporary password: "); ok {
			temporaryPassword = value
		}
	}
	if temporaryPassword == "" {
		t.Fatalf("reset output = %q, want temporary password line", out.String())
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		t.Fatalf("OpenSQLite() unexpected error: %v", err)
	}
	user, err := services.NewAuthService(db.NewUserRepository(database)).Authenticate("patient@example.com", temporaryPassword)
	if err != nil {
		t.Fatalf("Authenticate() with temporary password: %v", err)
	}
	if !user.MustChangePassword {
		t.Fatal("expected reset account to require a password change")
	}
}

func TestRunResetPasswordRejectsUnknownUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "goutly.db")

	err := RunResetPasswordCommand(dbPath, "nobody@example.com", io.Discard, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("RunResetPasswordCommand() error = %v, want not found", err)
	}
}

func TestRunResetPasswordValidatesEmail(t *testing.T) {
	t.Parallel()

	if err := RunResetPasswordCommand("unused.db", "   ", io.Discard, quietLogger()); err == nil {
		t.Fatal("expected empty email to fail")
	}
	if err := RunResetPasswordCommand("unused.db", "not-an-email", io.Discard, quietLogger()); err == nil {
		t.Fatal("expected invalid email to fail")
	}
}

func TestRunCreateUserRejectsMismatchAndWeakPasswords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "goutly.db")
	logger := quietLogger()

	err := RunCreateUserCommand(dbPath, "a@example.com", staticSecrets("Purine123", "Purine124"), io.Discard, logger)
	if err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("mismatch error = %v", err)
	}

	err = RunCreateUserCommand(dbPath, "a@example.com", staticSecrets("short", "short"), io.Discard, logger)
	if err == nil || !strings.Contains(err.Error(), "8 to 72 characters") {
		t.Fatalf("weak password error = %v", err)
	}

	if err := RunCreateUserCommand(dbPath, "a@example.com", staticSecrets("Purine123", "Purine123"), io.Discard, logger); err != nil {
		t.Fatalf("first create unexpected error: %v", err)
	}
	err = RunCreateUserCommand(dbPath, "A@example.com", staticSecrets("Purine123", "Purine123"), io.Discard, logger)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("duplicate error = %v", err)
	}
}

func TestTerminalSecretReaderWithoutStdin(t *testing.T) {
	var out bytes.Buffer
	_, err := TerminalSecretReader(nil, &out)("Password: ")
	if !errors.Is(err, errNoTerminal) {
		t.Fatalf("TerminalSecretReader(nil) error = %v, want errNoTerminal", err)
	}
	if !strings.HasPrefix(out.String(), "Password: ") {
		t.Fatalf("prompt output = %q, want the prompt first", out.String())
	}
}
