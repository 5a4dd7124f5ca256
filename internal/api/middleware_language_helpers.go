package api

import "github.com/gofiber/fiber/v2"

// LanguageMiddleware picks the response language from Accept-Language.
// AuthRequired later replaces it with the signed-in user's saved language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	c.Locals(contextLanguageKey, handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)))
	return c.Next()
}

func (handler *Handler) requestLanguage(c *fiber.Ctx) string {
	if language := currentLanguage(c); language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}
