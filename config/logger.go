package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.Level = level

	if cfg.LogFormat == "text" {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		return log
	}

	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	return log
}
