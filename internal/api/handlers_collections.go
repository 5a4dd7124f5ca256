package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/services"
)

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	history, err := handler.collections.History(user.ID)
	if err != nil {
		return handler.internalError(c, "load history", err)
	}
	return c.JSON(history)
}

func (handler *Handler) DeleteHistoryEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	history, err := handler.collections.DeleteHistoryEntry(user.ID, strings.TrimSpace(c.Params("id")))
	if err != nil {
		return handler.internalError(c, "delete history entry", err)
	}
	return c.JSON(history)
}

func (handler *Handler) ClearHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.collections.ClearHistory(user.ID); err != nil {
		return handler.internalError(c, "clear history", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetFavorites(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	favorites, err := handler.collections.Favorites(user.ID)
	if err != nil {
		return handler.internalError(c, "load favorites", err)
	}
	return c.JSON(favorites)
}

func (handler *Handler) ToggleFavorite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := favoriteToggleInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}
	if input.Analysis == nil || strings.TrimSpace(input.Analysis.ID) == "" {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_analysis")
	}

	favorites, isFavorite, err := handler.collections.ToggleFavorite(user.ID, *input.Analysis)
	if errors.Is(err, services.ErrInvalidAnalysis) {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_analysis")
	}
	if err != nil {
		return handler.internalError(c, "toggle favorite", err)
	}
	return c.JSON(fiber.Map{
		"favorites":  favorites,
		"isFavorite": isFavorite,
	})
}
