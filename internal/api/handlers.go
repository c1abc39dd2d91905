package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"kbradar/internal/dashboard"
	"kbradar/internal/util"
	"kbradar/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return false
	}
	return true
}

// scopedParts splits the path below prefix into non-empty segments.
func scopedParts(path, prefix string) []string {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, util.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, util.ErrInvalidParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleSearch keeps a fixed contract: 400 with an empty array when q is
// missing or longer than 100 characters, otherwise up to 10 results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := searchQuery{Q: r.URL.Query().Get("q")}
	if err := s.validate.Struct(q); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("[]"))
		return
	}
	writeJSON(w, http.StatusOK, s.views.Search(r.Context(), util.SanitizeQuery(q.Q), searchLimit))
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.views.Weeks(r.Context()))
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q, err := s.parseRankingQuery(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.views.Platform(r.Context(), q.Mode, q.Platform, q.Region, q.Cat, q.Limit)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	parts := scopedParts(r.URL.Path, "/api/regions/")
	if len(parts) != 1 {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	q, err := s.parseRegionQuery(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	col, err := s.views.Region(r.Context(), strings.ToUpper(parts[0]), q.Mode, q.Cat, q.Limit)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	parts := scopedParts(r.URL.Path, "/api/signals/")
	if len(parts) != 1 {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	view := parts[0]
	q, err := s.parseListQuery(r, dashboard.DefaultSignalLimit(view))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	items, err := s.views.Signal(r.Context(), view, q.Cat, q.Limit)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleBrandsScoped serves /api/brands/{id} and /api/brands/{name}/products.
func (s *Server) handleBrandsScoped(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	parts := scopedParts(r.URL.Path, "/api/brands/")
	switch {
	case len(parts) == 1:
		d := s.views.Drilldown(r.Context(), parts[0])
		if d == nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("brand not found"))
			return
		}
		writeJSON(w, http.StatusOK, d)
	case len(parts) == 2 && parts[1] == "products":
		limit := queryLimit(r, productLimit)
		if limit < 1 || limit > 100 {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: limit out of range", util.ErrInvalidParam))
			return
		}
		writeJSON(w, http.StatusOK, s.views.Products(r.Context(), util.SanitizeQuery(parts[0]), limit))
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	parts := scopedParts(r.URL.Path, "/api/companies/")
	if len(parts) != 1 {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	d := s.views.Company(r.Context(), parts[0])
	if d == nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("company not found"))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleWarm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if s.temporal == nil {
		writeErr(w, http.StatusServiceUnavailable, util.ErrNoTemporal)
		return
	}
	wfID := "warm-dashboard-" + uuid.NewString()
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                    wfID,
		TaskQueue:             s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, workflows.WarmDashboardWorkflow, workflows.WarmInput{
		Categories: s.cfg.WarmCategories,
		Limit:      s.cfg.DefaultLimit,
	})
	if err != nil {
		s.log.Error("start warm workflow", "workflow_id", wfID, "error", err)
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
}
