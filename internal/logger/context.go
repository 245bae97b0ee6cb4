package logger

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
)

type ctxKey struct{}

var reqSeq atomic.Uint64

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request logger, or zap.S() when none is set.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return zap.S()
}

// Middleware tags every request with a sequential request ID, method, and
// path, and stores the derived logger in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := zap.S().With(
			"req", strconv.FormatUint(reqSeq.Add(1), 10),
			"method", r.Method,
			"path", r.URL.Path,
		)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), l)))
	})
}
