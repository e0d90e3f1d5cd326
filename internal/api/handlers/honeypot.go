package handlers

import (
	"encoding/json"
	"net/http"

	"honeypot-lab/internal/domain/services"
	"honeypot-lab/pkg/logger"
)

// HoneypotHandler handles inbound scammer messages
type HoneypotHandler struct {
	sessions *services.SessionService
	logger   *logger.Logger
}

// NewHoneypotHandler creates a honeypot handler
func NewHoneypotHandler(sessions *services.SessionService, log *logger.Logger) *HoneypotHandler {
	return &HoneypotHandler{
		sessions: sessions,
		logger:   log.WithComponent("honeypot-handler"),
	}
}

// MessageRequest is the request body for an inbound message
type MessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Message handles POST /api/v1/honeypot/message - runs the full pipeline
// for one scammer message and returns the agent's reply
func (h *HoneypotHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.sessions.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("failed to handle message")
		respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	h.logger.Info().
		Str("session_id", result.SessionID).
		Bool("scam_detected", result.ScamDetected).
		Int("risk_score", result.RiskScore).
		Msg("message processed")

	respondJSON(w, http.StatusOK, result)
}
