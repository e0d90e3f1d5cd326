package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"honeypot-lab/internal/domain/services"
	"honeypot-lab/pkg/logger"
)

// SessionsHandler handles session inspection endpoints
type SessionsHandler struct {
	sessions *services.SessionService
	logger   *logger.Logger
}

// NewSessionsHandler creates a sessions handler
func NewSessionsHandler(sessions *services.SessionService, log *logger.Logger) *SessionsHandler {
	return &SessionsHandler{
		sessions: sessions,
		logger:   log.WithComponent("sessions-handler"),
	}
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := h.sessions.GetSession(r.Context(), id)
	if errors.Is(err, services.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("failed to load session")
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Analytics handles GET /api/v1/sessions/{id}/analytics
func (h *SessionsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	analytics, err := h.sessions.GetAnalytics(r.Context(), id)
	if errors.Is(err, services.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("failed to build analytics")
		respondError(w, http.StatusInternalServerError, "failed to build analytics")
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}

// Finalize handles POST /api/v1/sessions/{id}/finalize - force-sends the
// result callback and returns the delivered report
func (h *SessionsHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.sessions.Finalize(r.Context(), id)
	if errors.Is(err, services.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("failed to finalize session")
		respondError(w, http.StatusInternalServerError, "failed to finalize session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "final report delivered",
		"payload": report,
	})
}
