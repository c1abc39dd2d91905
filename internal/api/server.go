package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kbradar/internal/config"
	"kbradar/internal/dashboard"
	"kbradar/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	tclient "go.temporal.io/sdk/client"
)

// WorkflowStarter is the part of the Temporal client used to start cache
// warming.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options tclient.StartWorkflowOptions, workflow interface{}, args ...interface{}) (tclient.WorkflowRun, error)
}

type Server struct {
	cfg      config.Config
	views    *dashboard.Reader
	temporal WorkflowStarter
	validate *validator.Validate
	log      *logger.Logger
}

// NewServer wires handlers to their collaborators. temporal may be nil, in
// which case warm requests are rejected.
func NewServer(cfg config.Config, views *dashboard.Reader, temporal WorkflowStarter, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		cfg:      cfg,
		views:    views,
		temporal: temporal,
		validate: newValidator(),
		log:      log,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/weeks", s.handleWeeks)
	mux.HandleFunc("/api/rankings", s.handleRankings)
	mux.HandleFunc("/api/regions/", s.handleRegion)
	mux.HandleFunc("/api/signals/", s.handleSignals)
	mux.HandleFunc("/api/brands/", s.handleBrandsScoped)
	mux.HandleFunc("/api/companies/", s.handleCompany)
	mux.HandleFunc("/api/cache/warm", s.handleWarm)
	mux.Handle("/metrics", promhttp.Handler())
	return s.withRequestLog(withCORS(mux))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "cache": s.views.CacheStatus(r.Context())})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "KB-API-4000"

	switch {
	case status == http.StatusServiceUnavailable:
		return apiError{
			Code:    "KB-API-5030",
			Message: "Background workflows are not configured for this deployment.",
		}
	case status >= 500:
		return apiError{
			Code:    "KB-API-5000",
			Message: "Internal server error. Please retry or check service logs.",
		}
	case status == http.StatusBadRequest:
		code = "KB-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "KB-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "KB-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "KB-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case strings.Contains(low, "unknown platform"):
			msg = "Unknown platform."
		case strings.Contains(low, "unknown region"):
			msg = "Unknown region."
		case strings.Contains(low, "unknown mode"):
			msg = "Unknown view mode."
		case strings.Contains(low, "unknown signal view"):
			msg = "Unknown signal view."
		case strings.Contains(low, "limit"):
			msg = "limit must be between 1 and 100."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
