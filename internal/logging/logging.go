package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stdout at level. Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stdout)
}

func NewWithOutput(level string, output io.Writer) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(output)

	return logger
}

func WithFields(logger *logrus.Logger, fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}
