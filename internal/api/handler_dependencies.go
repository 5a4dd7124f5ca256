package api

import (
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, options Options, defaultGoal int, historyCap int) *Handler {
	handler.repositories = db.NewRepositories(database)

	analysisOptions := []services.MealAnalysisOption{
		services.WithTranslator(handler.i18n),
		services.WithLogger(handler.logger),
	}
	if options.ImageHinter != nil {
		analysisOptions = append(analysisOptions, services.WithImageHinter(options.ImageHinter))
	}
	if handler.metrics != nil {
		analysisOptions = append(analysisOptions, services.WithAnalysisRecorder(handler.metrics))
	}

	handler.analysisService = services.NewMealAnalysisService(options.Generator, analysisOptions...)
	handler.authService = services.NewAuthService(handler.repositories.Users).WithDefaultPurineGoal(defaultGoal)
	handler.settingsService = services.NewSettingsService(handler.repositories.Users, handler.i18n.SupportedLanguages()...)
	handler.collections = services.NewCollectionsService(handler.repositories.KV, historyCap)
	handler.intakeService = services.NewIntakeService(handler.repositories.PurineLogs, handler.repositories.Users)
	handler.statsService = services.NewStatsService(handler.intakeService, handler.repositories.Users)
	handler.exportService = services.NewExportService(handler.intakeService)
	return handler
}
