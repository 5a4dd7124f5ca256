package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	claims, err := services.ParseSessionToken(handler.secretKey, requestSessionToken(c), handler.now())
	if err != nil {
		return nil, err
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !services.IsPasswordStateFingerprintMatch(claims.PasswordState, user.PasswordHash) {
		return nil, services.ErrSessionTokenInvalidState
	}

	return &user, nil
}

// requestSessionToken prefers the session cookie and falls back to an
// Authorization: Bearer header for non-browser clients.
func requestSessionToken(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(authCookieName)); token != "" {
		return token
	}
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}
