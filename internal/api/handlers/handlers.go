package handlers

import (
	"encoding/json"
	"net/http"

	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/internal/infrastructure/database"
	"honeypot-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Honeypot *HoneypotHandler
	Sessions *SessionsHandler
	Analyze  *AnalyzeHandler
	Patterns *PatternsHandler
	Reports  *ReportsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Sessions  *services.SessionService
	Extractor *services.Extractor
	Scorer    *services.RiskScorer
	Patterns  *services.PatternLibrary
	Reports   ReportReader
	Cache     *cache.RedisCache
	DB        *database.PostgresDB
	Logger    *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.DB, deps.Logger),
		Honeypot: NewHoneypotHandler(deps.Sessions, deps.Logger),
		Sessions: NewSessionsHandler(deps.Sessions, deps.Logger),
		Analyze:  NewAnalyzeHandler(deps.Extractor, deps.Scorer, deps.Logger),
		Patterns: NewPatternsHandler(deps.Patterns, deps.Logger),
		Reports:  NewReportsHandler(deps.Reports, deps.Logger),
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
