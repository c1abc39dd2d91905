package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kbradar/internal/metrics"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// routeLabel collapses scoped paths so ids do not explode metric
// cardinality.
func routeLabel(path string) string {
	for _, prefix := range []string{"/api/regions/", "/api/signals/", "/api/brands/", "/api/companies/"} {
		if strings.HasPrefix(path, prefix) {
			if prefix == "/api/brands/" && strings.HasSuffix(strings.TrimSuffix(path, "/"), "/products") {
				return prefix + ":name/products"
			}
			if prefix == "/api/signals/" {
				return prefix + ":view"
			}
			return prefix + ":id"
		}
	}
	switch path {
	case "/healthz", "/metrics", "/api/search", "/api/weeks", "/api/rankings", "/api/cache/warm":
		return path
	}
	return "other"
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		if s.cfg.QueryTimeout > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), s.cfg.QueryTimeout)
			defer cancel()
			r = r.WithContext(ctx)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeLabel(r.URL.Path)
		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		if route == "/metrics" || route == "/healthz" {
			return
		}
		s.log.Info("http request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}
