package logger

import (
	"io"
	"os"
	"path/filepath"

	"finance-backend/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func Init(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.File != "" {
		logDir := filepath.Dir(cfg.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			logrus.WithError(err).Warn("unable to create log directory")
		}
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,    // MB
			MaxAge:     cfg.MaxAge,     // days
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   true,
		}
		writers = append(writers, fileWriter)
	}

	logrus.SetOutput(io.MultiWriter(writers...))

	logrus.Info("logger initialized")
}

func GetLogger() *logrus.Logger {
	return logrus.StandardLogger()
}
