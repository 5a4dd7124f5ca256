package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

func (handler *Handler) CreateLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := logMealInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	analysis, status, key := handler.resolveLoggedAnalysis(user, input)
	if status != 0 {
		return handler.apiError(c, status, key)
	}

	var timestamp time.Time
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	entry, err := handler.intakeService.LogMeal(user.ID, analysis, models.TimeOfDay(input.TimeOfDay), timestamp)
	switch {
	case errors.Is(err, services.ErrInvalidTimeOfDay):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_time_of_day")
	case errors.Is(err, services.ErrInvalidIntakeEntry):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_analysis")
	case err != nil:
		return handler.internalError(c, "log meal", err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// resolveLoggedAnalysis accepts either a full analysis or the id of one kept
// in history or favorites.
func (handler *Handler) resolveLoggedAnalysis(user *models.User, input logMealInput) (models.MealAnalysis, int, string) {
	if input.Analysis != nil {
		return *input.Analysis, 0, ""
	}

	analysisID := strings.TrimSpace(input.AnalysisID)
	if analysisID == "" {
		return models.MealAnalysis{}, fiber.StatusBadRequest, "error.invalid_analysis"
	}
	found, err := handler.collections.FindAnalyses(user.ID, []string{analysisID})
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			return models.MealAnalysis{}, fiber.StatusNotFound, "error.analysis_not_found"
		}
		return models.MealAnalysis{}, fiber.StatusInternalServerError, "error.internal"
	}
	return found[0], 0, ""
}

func (handler *Handler) GetLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, err := handler.parseDayParam(c.Query("date"))
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_date")
	}

	entries, err := handler.intakeService.ListForDay(user.ID, day, handler.location)
	if err != nil {
		return handler.internalError(c, "list logs", err)
	}
	return c.JSON(entries)
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	err := handler.intakeService.DeleteEntry(user.ID, c.Params("id"))
	switch {
	case errors.Is(err, services.ErrIntakeLogNotFound):
		return handler.apiError(c, fiber.StatusNotFound, "error.log_not_found")
	case err != nil:
		return handler.internalError(c, "delete log", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetBudget(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, err := handler.parseDayParam(c.Query("date"))
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_date")
	}

	budget, err := handler.intakeService.DailyBudget(user.ID, day, handler.location)
	if err != nil {
		return handler.internalError(c, "daily budget", err)
	}
	return c.JSON(budgetResponse{
		DailyPurineBudget: budget,
		StatusLabel:       handler.i18n.Label(handler.requestLanguage(c), "budget", string(budget.Status)),
	})
}
