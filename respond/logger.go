package respond

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}

var fallback = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}()

// SetFallback sets the logger used when a context carries no request entry.
func SetFallback(l *logrus.Logger) {
	fallback = l
}

func Fallback() *logrus.Logger {
	return fallback
}

func WithLogger(ctx context.Context, entry logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLog{}, entry)
}

// Logger returns the request-scoped entry stored by the request logger.
func Logger(ctx context.Context) logrus.FieldLogger {
	if entry, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return entry
	}
	return fallback
}
