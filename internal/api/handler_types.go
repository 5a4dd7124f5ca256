package api

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/i18n"
	"github.com/terraincognita07/goutly/internal/metrics"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

type Handler struct {
	secretKey     []byte
	location      *time.Location
	cookieSecure  bool
	i18n          *i18n.Manager
	logger        logrus.FieldLogger
	metrics       *metrics.Recorder
	loginThrottle *loginThrottle
	now           func() time.Time

	repositories    *db.Repositories
	analysisService *services.MealAnalysisService
	authService     *services.AuthService
	settingsService *services.SettingsService
	collections     *services.CollectionsService
	intakeService   *services.IntakeService
	statsService    *services.StatsService
	exportService   *services.ExportService
}

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	RememberMe      bool   `json:"rememberMe" form:"rememberMe"`
}

type textAnalysisInput struct {
	Description     string `json:"description" form:"description"`
	UseDailyContext bool   `json:"useDailyContext" form:"useDailyContext"`
}

type compareInput struct {
	IDs []string `json:"ids"`
}

type favoriteToggleInput struct {
	Analysis *models.MealAnalysis `json:"analysis"`
}

type logMealInput struct {
	Analysis   *models.MealAnalysis `json:"analysis"`
	AnalysisID string               `json:"analysisId"`
	TimeOfDay  string               `json:"timeOfDay"`
	Timestamp  *time.Time           `json:"timestamp"`
}

type mealIdeasInput struct {
	Preferences string `json:"preferences" form:"preferences"`
}

type budgetResponse struct {
	services.DailyPurineBudget
	StatusLabel string `json:"statusLabel"`
}

type forecastResponse struct {
	services.Forecast
	Budgets []services.DailyPurineBudget `json:"budgets"`
}
