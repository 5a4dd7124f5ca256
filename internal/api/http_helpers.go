package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/services"
)

const dayParamLayout = "2006-01-02"

// apiError writes {"error": key, "message": localized text}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   key,
		"message": handler.i18n.Translate(handler.requestLanguage(c), key),
	})
}

// analysisError maps the analysis error taxonomy onto HTTP statuses.
func (handler *Handler) analysisError(c *fiber.Ctx, kind string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	case errors.Is(err, services.ErrMalformedResponse):
		return handler.apiError(c, fiber.StatusBadGateway, "error.malformed_response")
	case errors.Is(err, services.ErrAnalysisUnavailable):
		return handler.apiError(c, fiber.StatusServiceUnavailable, "error.analysis_unavailable")
	default:
		return handler.internalError(c, kind, err)
	}
}

func (handler *Handler) internalError(c *fiber.Ctx, operation string, err error) error {
	handler.logger.WithFields(logrus.Fields{
		"operation": operation,
		"path":      c.Path(),
		"error":     err,
	}).Error("request failed")
	return handler.apiError(c, fiber.StatusInternalServerError, "error.internal")
}

// parseDayParam reads a YYYY-MM-DD value in the handler location. An empty
// value means today.
func (handler *Handler) parseDayParam(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return handler.today(), nil
	}
	return time.ParseInLocation(dayParamLayout, value, handler.location)
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}
