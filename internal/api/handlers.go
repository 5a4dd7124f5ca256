package api

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/i18n"
	"github.com/terraincognita07/goutly/internal/metrics"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
	"gorm.io/gorm"
)

// Options configures NewHandler. Generator is required; ImageHinter and
// Metrics are optional.
type Options struct {
	SecretKey         string
	Location          *time.Location
	CookieSecure      bool
	I18n              *i18n.Manager
	Logger            logrus.FieldLogger
	Metrics           *metrics.Recorder
	Generator         services.ContentGenerator
	ImageHinter       services.ImageHinter
	DefaultPurineGoal int
	HistoryCap        int
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if options.Generator == nil {
		return nil, errors.New("content generator is required")
	}
	if strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	historyCap := options.HistoryCap
	if historyCap <= 0 {
		historyCap = services.HistoryCap
	}
	defaultGoal := options.DefaultPurineGoal
	if defaultGoal <= 0 {
		defaultGoal = models.DefaultDailyPurineGoal
	}

	handler := &Handler{
		secretKey:     []byte(options.SecretKey),
		location:      location,
		cookieSecure:  options.CookieSecure,
		i18n:          options.I18n,
		logger:        logger,
		metrics:       options.Metrics,
		loginThrottle: newLoginThrottle(loginAttemptsLimit, loginAttemptsWindow),
		now:           time.Now,
	}
	return handler.withDependencies(database, options, defaultGoal, historyCap), nil
}
