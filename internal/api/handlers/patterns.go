package handlers

import (
	"net/http"

	"honeypot-lab/internal/domain/services"
	"honeypot-lab/pkg/logger"
)

// PatternsHandler exposes the active pattern library summary
type PatternsHandler struct {
	patterns *services.PatternLibrary
	logger   *logger.Logger
}

// NewPatternsHandler creates a patterns handler
func NewPatternsHandler(patterns *services.PatternLibrary, log *logger.Logger) *PatternsHandler {
	return &PatternsHandler{
		patterns: patterns,
		logger:   log.WithComponent("patterns-handler"),
	}
}

// PatternsResponse summarizes the loaded rule set
type PatternsResponse struct {
	Version            string `json:"version"`
	SuspiciousKeywords int    `json:"suspiciousKeywords"`
	UrgencyKeywords    int    `json:"urgencyKeywords"`
	TacticCategories   int    `json:"tacticCategories"`
	ThreatRules        int    `json:"threatRules"`
	ScamRules          int    `json:"scamRules"`
	URLShorteners      int    `json:"urlShorteners"`
	SuspiciousTLDs     int    `json:"suspiciousTlds"`
	LegitimateDomains  int    `json:"legitimateDomains"`
	Banks              int    `json:"banks"`
	Authorities        int    `json:"authorities"`
	Apps               int    `json:"apps"`
}

// Get handles GET /api/v1/patterns
func (h *PatternsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PatternsResponse{
		Version:            h.patterns.Version,
		SuspiciousKeywords: len(h.patterns.SuspiciousKeywords),
		UrgencyKeywords:    len(h.patterns.UrgencyKeywords),
		TacticCategories:   len(h.patterns.TacticCategories),
		ThreatRules:        len(h.patterns.ThreatRules),
		ScamRules:          len(h.patterns.ScamRules),
		URLShorteners:      len(h.patterns.URLShorteners),
		SuspiciousTLDs:     len(h.patterns.SuspiciousTLDs),
		LegitimateDomains:  len(h.patterns.LegitimateDomains),
		Banks:              len(h.patterns.Banks),
		Authorities:        len(h.patterns.Authorities),
		Apps:               len(h.patterns.Apps),
	})
}
