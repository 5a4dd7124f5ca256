package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	if handler.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))
	}
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Post("", handler.UpdateSettings)
	settings.Post("/change-password", handler.ChangePassword)

	analysis := api.Group("/analysis", handler.AuthRequired)
	analysis.Post("/text", handler.AnalyzeText)
	analysis.Post("/image", handler.AnalyzeImage)
	analysis.Post("/compare", handler.CompareMeals)

	history := api.Group("/history", handler.AuthRequired)
	history.Get("", handler.GetHistory)
	history.Delete("", handler.ClearHistory)
	history.Delete("/:id", handler.DeleteHistoryEntry)

	favorites := api.Group("/favorites", handler.AuthRequired)
	favorites.Get("", handler.GetFavorites)
	favorites.Post("/toggle", handler.ToggleFavorite)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.GetLogs)
	logs.Post("", handler.CreateLog)
	logs.Delete("/:id", handler.DeleteLog)

	api.Get("/budget", handler.AuthRequired, handler.GetBudget)
	api.Get("/stats/trend", handler.AuthRequired, handler.GetPurineTrend)
	api.Get("/forecast", handler.AuthRequired, handler.GetForecast)
	api.Post("/ideas", handler.AuthRequired, handler.SuggestMealIdeas)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
