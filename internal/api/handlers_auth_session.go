package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}
	if credentials.ConfirmPassword != "" && strings.TrimSpace(credentials.ConfirmPassword) != strings.TrimSpace(credentials.Password) {
		return handler.apiError(c, fiber.StatusBadRequest, "error.password_mismatch")
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_credentials")
	case errors.Is(err, services.ErrWeakPassword):
		return handler.apiError(c, fiber.StatusBadRequest, "error.weak_password")
	case errors.Is(err, services.ErrAuthEmailTaken):
		return handler.apiError(c, fiber.StatusConflict, "error.email_taken")
	case err != nil:
		return handler.internalError(c, "register", err)
	}

	return handler.respondSession(c, &user, true, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.now()
	client := loginClientKey(c)
	if handler.loginThrottle.blocked(client, now) {
		return handler.apiError(c, fiber.StatusTooManyRequests, "error.too_many_attempts")
	}

	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		handler.loginThrottle.fail(client, now)
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginThrottle.fail(client, now)
			return handler.apiError(c, fiber.StatusUnauthorized, "error.invalid_credentials")
		}
		return handler.internalError(c, "login", err)
	}
	handler.loginThrottle.clear(client)

	return handler.respondSession(c, &user, credentials.RememberMe, fiber.StatusOK)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// respondSession sets the session cookie and echoes the token for clients
// that authenticate with a bearer header instead.
func (handler *Handler) respondSession(c *fiber.Ctx, user *models.User, rememberMe bool, status int) error {
	token, err := handler.setAuthCookie(c, user, rememberMe)
	if err != nil {
		return handler.internalError(c, "session", err)
	}

	c.Locals(contextLanguageKey, handler.i18n.NormalizeLanguage(user.Language))
	return c.Status(status).JSON(fiber.Map{
		"ok":                 true,
		"token":              token,
		"email":              user.Email,
		"mustChangePassword": user.MustChangePassword,
	})
}
