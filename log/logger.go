package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the service.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)

	Sync() error
	Level() zapcore.Level
}

type loggerImpl struct {
	zapLogger *zap.Logger
}

var _ Logger = &loggerImpl{}

// NoOpLogger discards everything. Useful in tests.
type NoOpLogger struct{}

var _ Logger = &NoOpLogger{}

// NewNopLogger returns a logger that discards all entries.
func NewNopLogger() Logger {
	return &NoOpLogger{}
}

func (*NoOpLogger) Debug(msg string, fields ...zap.Field) {}
func (*NoOpLogger) Info(msg string, fields ...zap.Field)  {}
func (*NoOpLogger) Warn(msg string, fields ...zap.Field)  {}
func (*NoOpLogger) Error(msg string, fields ...zap.Field) {}
func (*NoOpLogger) Fatal(msg string, fields ...zap.Field) {}
func (*NoOpLogger) Sync() error                           { return nil }
func (*NoOpLogger) Level() zapcore.Level                  { return zapcore.InvalidLevel }

// NewLogger creates a zap backed logger.
// In production mode entries are JSON encoded and also written to fileName.
// logLevelStr is parsed with zapcore level names ("debug", "info", ...).
func NewLogger(isProductionLogger bool, fileName string, logLevelStr string) (Logger, error) {
	logLevel, err := zapcore.ParseLevel(logLevelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid logger level %q: %w", logLevelStr, err)
	}

	var loggerConfig zap.Config
	if isProductionLogger {
		loggerConfig = zap.NewProductionConfig()
		loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		loggerConfig.OutputPaths = []string{"stdout"}
		if fileName != "" {
			loggerConfig.OutputPaths = append(loggerConfig.OutputPaths, fileName)
		}
	} else {
		loggerConfig = zap.NewDevelopmentConfig()
		loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(logLevel)

	zapLogger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return &loggerImpl{zapLogger: zapLogger}, nil
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) { l.zapLogger.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...zap.Field)  { l.zapLogger.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...zap.Field)  { l.zapLogger.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...zap.Field) { l.zapLogger.Error(msg, fields...) }
func (l *loggerImpl) Fatal(msg string, fields ...zap.Field) { l.zapLogger.Fatal(msg, fields...) }

// Sync flushes any buffered entries.
func (l *loggerImpl) Sync() error {
	return l.zapLogger.Sync()
}

// Level returns the minimum enabled level.
func (l *loggerImpl) Level() zapcore.Level {
	return l.zapLogger.Level()
}
