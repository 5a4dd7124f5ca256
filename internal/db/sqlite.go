package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens (creating if needed) the database at dbPath and brings
// its schema up to date. A nil logger falls back to the logrus standard logger.
func OpenSQLite(dbPath string, logger *logrus.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			logger,
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := applyEmbeddedMigrations(database)
	if err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	for _, name := range applied {
		logger.WithField("migration", name).Info("applied schema migration")
	}

	return database, nil
}
