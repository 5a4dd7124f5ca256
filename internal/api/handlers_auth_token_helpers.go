package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

// setAuthCookie issues a session for user. Without rememberMe the cookie
// lives for the browser session while the token still expires after
// DefaultSessionTTL.
func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User, rememberMe bool) (string, error) {
	ttl := services.DefaultSessionTTL
	if rememberMe {
		ttl = services.RememberSessionTTL
	}

	now := handler.now()
	token, err := services.BuildSessionToken(handler.secretKey, user.ID, user.PasswordHash, ttl, now)
	if err != nil {
		return "", err
	}

	var expires time.Time
	if rememberMe {
		expires = now.Add(ttl)
	}
	c.Cookie(handler.sessionCookie(token, expires))
	return token, nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie("", handler.now().Add(-time.Hour)))
}

func (handler *Handler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
