package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	c.Locals(contextUserKey, user)
	if strings.TrimSpace(user.Language) != "" {
		c.Locals(contextLanguageKey, handler.i18n.NormalizeLanguage(user.Language))
	}

	if user.MustChangePassword && !allowedDuringPasswordChange(c.Path()) {
		return handler.apiError(c, fiber.StatusForbidden, "error.password_change_required")
	}
	return c.Next()
}

func allowedDuringPasswordChange(path string) bool {
	switch strings.TrimRight(strings.TrimSpace(path), "/") {
	case "/api/auth/logout", "/api/settings", "/api/settings/change-password":
		return true
	default:
		return false
	}
}
