package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new logger instance based on configuration.
func New(serviceName, environment, logLevel, logFormat string) (*zap.Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if logFormat == "json" {
		config.Encoding = "json"
	} else {
		config.Encoding = "console"
	}

	config.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     environment,
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.StacktraceKey = "stacktrace"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	if hostname, err := os.Hostname(); err == nil {
		logger = logger.With(zap.String("hostname", hostname))
	}

	return logger, nil
}

// WithRequest creates a logger with request context fields.
func WithRequest(logger *zap.Logger, requestID string, userID uint) *zap.Logger {
	fields := []zap.Field{}

	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if userID != 0 {
		fields = append(fields, zap.Uint("user_id", userID))
	}

	if len(fields) > 0 {
		return logger.With(fields...)
	}

	return logger
}
