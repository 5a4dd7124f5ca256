package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/api"
	"github.com/terraincognita07/goutly/internal/cli"
	"github.com/terraincognita07/goutly/internal/config"
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/gemini"
	"github.com/terraincognita07/goutly/internal/i18n"
	"github.com/terraincognita07/goutly/internal/logging"
	"github.com/terraincognita07/goutly/internal/metrics"
	"github.com/terraincognita07/goutly/internal/services"
	"github.com/terraincognita07/goutly/internal/vision"
)

const maxRequestBodyBytes = 10 << 20

var errUnknownCommand = errors.New("unknown command")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.LogLevel)
	time.Local = cfg.Location

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], cfg, logger, os.Stdin, os.Stdout); err != nil {
			logger.Fatal(err)
		}
		return
	}

	if err := serve(cfg, logger); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

// runCommand executes an administrative subcommand against the configured database.
func runCommand(args []string, cfg *config.Config, logger *logrus.Logger, stdin *os.File, out io.Writer) error {
	command := args[0]
	switch command {
	case "reset-password", "create-user":
		if len(args) != 2 {
			return fmt.Errorf("usage: goutly %s <email>", command)
		}
	default:
		return fmt.Errorf("%w %q (available: reset-password, create-user)", errUnknownCommand, command)
	}

	if command == "reset-password" {
		return cli.RunResetPasswordCommand(cfg.DBPath, args[1], out, logger)
	}
	return cli.RunCreateUserCommand(cfg.DBPath, args[1], cli.TerminalSecretReader(stdin, out), out, logger)
}

func serve(cfg *config.Config, logger *logrus.Logger) error {
	if cfg.EphemeralSecret {
		logger.Warn("SECRET_KEY is not set; using an ephemeral development key, sessions end on restart")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; meal analysis requests will report the service as unavailable")
	}

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	options := api.Options{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		I18n:         i18nManager,
		Logger:       logger,
		Metrics:      metrics.NewRecorder(),
		Generator: gemini.NewClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Timeout: cfg.GeminiTimeout,
		}),
		DefaultPurineGoal: cfg.DefaultPurineGoal,
		HistoryCap:        cfg.HistoryCap,
	}
	if hinter := newImageHinter(lifecycleCtx, cfg, logger); hinter != nil {
		options.ImageHinter = hinter
	}

	handler, err := api.NewHandler(database, options)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler, logger)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":  cfg.Port,
		"db":    cfg.DBPath,
		"tz":    cfg.Location.String(),
		"model": cfg.GeminiModel,
	}).Info("goutly listening")
	return app.Listen(":" + cfg.Port)
}

// newImageHinter returns nil when Rekognition hints are disabled or cannot
// be configured; analysis then runs without label hints.
func newImageHinter(ctx context.Context, cfg *config.Config, logger *logrus.Logger) services.ImageHinter {
	if !cfg.RekognitionEnabled {
		return nil
	}
	hinter, err := vision.NewLabelHinter(ctx, cfg.AWSRegion)
	if err != nil {
		logger.WithError(err).Warn("rekognition label hints disabled")
		return nil
	}
	return hinter
}

func newApp(handler *api.Handler, logger *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "goutly",
		DisableStartupMessage: true,
		BodyLimit:             maxRequestBodyBytes,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: logger.Writer()}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
