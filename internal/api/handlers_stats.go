package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/services"
)

const defaultTrendDays = 30

func (handler *Handler) GetPurineTrend(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	span, err := services.ParseDateSpan(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, spanErrorKey(err))
	}
	from, to := span.Closed(handler.today(), defaultTrendDays)

	trend, err := handler.statsService.BuildPurineTrend(user.ID, from, to, handler.location)
	switch {
	case errors.Is(err, services.ErrStatsRangeInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_range")
	case err != nil:
		return handler.internalError(c, "purine trend", err)
	}
	return c.JSON(trend)
}
