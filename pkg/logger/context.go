package logger

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey contextKey = "logger"

	// LocalsKey is the fiber locals key holding the request scoped logger.
	LocalsKey = "logger"
)

// FromContext retrieves the logger from the context
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return GetLogger()
	}
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return l
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromFiber retrieves the request scoped logger from the fiber context
func FromFiber(c *fiber.Ctx) *zap.Logger {
	l, ok := c.Locals(LocalsKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return l
}
