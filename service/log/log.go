package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var defaultLogger *zap.Logger

func init() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(zapcore.InfoLevel))
	defaultLogger = zap.New(core)
}

// Logger returns the logger attached to ctx, or the default logger
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a context whose logger carries the given fields
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return Set(ctx, Logger(ctx).With(fields...))
}

// Set attaches the logger to the context
func Set(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// SetDefault replaces the default logger (e.g. with a development config)
func SetDefault(logger *zap.Logger) {
	defaultLogger = logger
}

// Fatal logs the message with the default logger and exits
func Fatal(msg string, fields ...zap.Field) {
	defaultLogger.Fatal(msg, fields...)
}
