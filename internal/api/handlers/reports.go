package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/infrastructure/database/repository"
	"honeypot-lab/pkg/logger"
)

const (
	defaultReportLimit = 20
	maxReportLimit     = 100
)

// ReportReader reads archived intelligence reports
type ReportReader interface {
	GetLatestBySession(ctx context.Context, sessionID string) (*models.IntelligenceReport, error)
	ListRecent(ctx context.Context, limit int) ([]*models.IntelligenceReport, error)
}

// ReportsHandler exposes the report archive. reader is nil when no
// database is configured.
type ReportsHandler struct {
	reader ReportReader
	logger *logger.Logger
}

// NewReportsHandler creates a reports handler
func NewReportsHandler(reader ReportReader, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		reader: reader,
		logger: log.WithComponent("reports-handler"),
	}
}

// List handles GET /api/v1/reports - newest archived reports first
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		respondError(w, http.StatusServiceUnavailable, "report archive not configured")
		return
	}

	limit := defaultReportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxReportLimit {
		limit = maxReportLimit
	}

	reports, err := h.reader.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list reports")
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(reports),
		"reports": reports,
	})
}

// GetBySession handles GET /api/v1/sessions/{id}/report - the most
// recent archived report for a session
func (h *ReportsHandler) GetBySession(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		respondError(w, http.StatusServiceUnavailable, "report archive not configured")
		return
	}

	id := chi.URLParam(r, "id")

	report, err := h.reader.GetLatestBySession(r.Context(), id)
	if errors.Is(err, repository.ErrReportNotFound) {
		respondError(w, http.StatusNotFound, "no report for session")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("failed to load report")
		respondError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
