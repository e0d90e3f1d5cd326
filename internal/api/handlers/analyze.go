package handlers

import (
	"encoding/json"
	"net/http"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/pkg/logger"
)

// AnalyzeHandler exposes stateless single-message analysis
type AnalyzeHandler struct {
	extractor *services.Extractor
	scorer    *services.RiskScorer
	logger    *logger.Logger
}

// NewAnalyzeHandler creates an analyze handler
func NewAnalyzeHandler(extractor *services.Extractor, scorer *services.RiskScorer, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		extractor: extractor,
		scorer:    scorer,
		logger:    log.WithComponent("analyze-handler"),
	}
}

// AnalyzeRequest is the request body for single-message analysis
type AnalyzeRequest struct {
	Message string `json:"message"`
}

// AnalyzeResponse is the extraction and scoring result for one message
type AnalyzeResponse struct {
	Intelligence models.IntelligenceRecord `json:"intelligence"`
	Risk         models.RiskAssessment     `json:"risk"`
}

// Analyze handles POST /api/v1/analyze - extracts and scores one message
// without touching any session state
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	record := h.extractor.Extract(req.Message)
	assessment := h.scorer.Score(&record)

	h.logger.Info().
		Int("risk_score", assessment.Score).
		Str("risk_level", string(assessment.Level)).
		Str("scam_type", string(record.ScamType)).
		Msg("message analyzed")

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Intelligence: record,
		Risk:         assessment,
	})
}
