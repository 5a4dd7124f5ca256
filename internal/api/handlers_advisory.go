package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

const forecastWindowDays = 7

// GetForecast never fails on the generative side: an unavailable service
// yields the localized fallback forecast with available=false.
func (handler *Handler) GetForecast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	budgets, err := handler.recentBudgets(user, forecastWindowDays)
	if err != nil {
		return handler.internalError(c, "forecast budgets", err)
	}

	forecast := handler.analysisService.GenerateForecast(c.UserContext(), services.ForecastInput{
		Language:      handler.requestLanguage(c),
		Today:         handler.today(),
		DailyGoal:     services.EffectivePurineGoal(*user),
		RecentBudgets: budgets,
		Notes:         strings.TrimSpace(c.Query("notes")),
	})
	return c.JSON(forecastResponse{Forecast: forecast, Budgets: budgets})
}

func (handler *Handler) SuggestMealIdeas(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := mealIdeasInput{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
		}
	}

	budget, err := handler.intakeService.DailyBudget(user.ID, handler.today(), handler.location)
	if err != nil {
		return handler.internalError(c, "ideas budget", err)
	}

	ideas := handler.analysisService.SuggestMealIdeas(c.UserContext(), budget.Remaining, input.Preferences, handler.requestLanguage(c))
	return c.JSON(fiber.Map{
		"ideas":           ideas,
		"remainingBudget": budget.Remaining,
	})
}

// recentBudgets returns one budget per day for the last days days, oldest first.
func (handler *Handler) recentBudgets(user *models.User, days int) ([]services.DailyPurineBudget, error) {
	today := handler.today()
	from := today.AddDate(0, 0, -(days - 1))
	entries, err := handler.intakeService.ListForRange(user.ID, &from, &today, handler.location)
	if err != nil {
		return nil, err
	}

	goal := services.EffectivePurineGoal(*user)
	budgets := make([]services.DailyPurineBudget, 0, days)
	for day := from; !day.After(today); day = day.AddDate(0, 0, 1) {
		budgets = append(budgets, services.ComputeDailyBudget(entries, day, goal, handler.location))
	}
	return budgets, nil
}
