package middleware

import (
	"net/http"

	"github.com/mitchellh/go-server-timing"
)

// WithServerTiming attaches a servertiming.Header to the request context.
// Upstream fetch spans report their attempt durations through it, so the
// response exposes per-attempt timings alongside the fetch-total metric.
func WithServerTiming(w http.ResponseWriter, r *http.Request, next http.Handler) {
	servertiming.Middleware(next, nil).ServeHTTP(w, r)
}
