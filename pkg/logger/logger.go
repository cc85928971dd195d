// Package logger holds the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Init initializes the global logger. env "production" selects the JSON
// encoder; anything else gets the colored console encoder.
func Init(level string, env string) error {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return err
	}
	globalLogger = logger.Sugar()
	return nil
}

// Get returns the global logger, falling back to a development logger when
// Init has not been called.
func Get() *zap.SugaredLogger {
	if globalLogger == nil {
		logger, _ := zap.NewDevelopment()
		globalLogger = logger.Sugar()
	}
	return globalLogger
}
