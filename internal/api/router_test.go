package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/api/handlers"
	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/internal/infrastructure/store"
	"honeypot-lab/pkg/logger"
)

const testAPIKey = "router-test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc := cache.NewFromClient(client, "honeypot:", logger.Nop())

	lib, err := services.NewPatternLibrary(services.DefaultPatternConfig())
	require.NoError(t, err)

	engineCfg := config.EngineConfig{MinBankAccountDigits: 9, CountryCodePrefix: "91", MaxInputLength: 4096}
	scoringCfg := config.ScoringConfig{
		MultiplePhones: 30, PhishingLinks: 40, UPIIDs: 20,
		KeywordsLow: 15, KeywordsModerate: 30, KeywordsHigh: 50,
		CredentialRequest: 40, URLShortener: 25, SuspiciousTLD: 35,
		HighThreshold: 70, MediumThreshold: 40, ScamScoreThreshold: 40,
	}

	extractor := services.NewExtractor(lib, engineCfg, logger.Nop())
	scorer := services.NewRiskScorer(scoringCfg)
	sessionStore := store.NewRedisSessionStore(rc, time.Hour)
	sessions := services.NewSessionService(sessionStore, extractor, scorer,
		services.NewStallReplyGenerator(), nil, nil, scoringCfg, config.CallbackConfig{}, logger.Nop())

	h := handlers.NewHandlers(handlers.Dependencies{
		Sessions:  sessions,
		Extractor: extractor,
		Scorer:    scorer,
		Patterns:  lib,
		Cache:     rc,
		Logger:    logger.Nop(),
	})

	cfg := config.Config{}
	cfg.Auth.APIKey = testAPIKey

	return NewRouter(cfg, h, rc, logger.Nop()).Setup()
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresKey(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/patterns", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMessagePipelineOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	body := `{"sessionId":"http-1","message":"Your KYC expires today, share the OTP at https://bit.ly/kyc-now"}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/honeypot/message", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var result services.MessageResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "http-1", result.SessionID)
	assert.True(t, result.ScamDetected)
	assert.NotEmpty(t, result.Reply)

	// session state is visible through the sessions endpoints
	rec = doJSON(t, router, http.MethodGet, "/api/v1/sessions/http-1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"scamDetected":true`)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sessions/http-1/analytics", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"engagementScore"`)
}

func TestMessageValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/honeypot/message", `{"message":"hi"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/honeypot/message", `{"sessionId":"x"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSessionReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/sessions/no-such-session", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/sessions/no-such-session/finalize", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportEndpointsWithoutArchive(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reports", "", true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sessions/s1/report", "", true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPatternsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/patterns", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "version")
}
