package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/infrastructure/database/repository"
	"honeypot-lab/pkg/logger"
)

// fakeReportReader serves canned reports for handler tests
type fakeReportReader struct {
	reports map[string]*models.IntelligenceReport
}

func (f *fakeReportReader) GetLatestBySession(_ context.Context, sessionID string) (*models.IntelligenceReport, error) {
	report, ok := f.reports[sessionID]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportReader) ListRecent(_ context.Context, limit int) ([]*models.IntelligenceReport, error) {
	out := []*models.IntelligenceReport{}
	for _, report := range f.reports {
		if len(out) == limit {
			break
		}
		out = append(out, report)
	}
	return out, nil
}

func sessionRequest(method, target, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", sessionID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestReportsGetBySession(t *testing.T) {
	reader := &fakeReportReader{reports: map[string]*models.IntelligenceReport{
		"sess-1": {
			SessionID:    "sess-1",
			ScamDetected: true,
			RiskScore:    80,
			RiskLevel:    models.RiskHigh,
			Intelligence: models.EmptyIntelligenceRecord(),
		},
	}}
	h := NewReportsHandler(reader, logger.Nop())

	rec := httptest.NewRecorder()
	h.GetBySession(rec, sessionRequest(http.MethodGet, "/api/v1/sessions/sess-1/report", "sess-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var report models.IntelligenceReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "sess-1", report.SessionID)
	assert.True(t, report.ScamDetected)
	assert.Equal(t, 80, report.RiskScore)
}

func TestReportsGetBySessionNotFound(t *testing.T) {
	h := NewReportsHandler(&fakeReportReader{reports: map[string]*models.IntelligenceReport{}}, logger.Nop())

	rec := httptest.NewRecorder()
	h.GetBySession(rec, sessionRequest(http.MethodGet, "/api/v1/sessions/missing/report", "missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsList(t *testing.T) {
	reader := &fakeReportReader{reports: map[string]*models.IntelligenceReport{
		"sess-1": {SessionID: "sess-1", Intelligence: models.EmptyIntelligenceRecord()},
		"sess-2": {SessionID: "sess-2", Intelligence: models.EmptyIntelligenceRecord()},
	}}
	h := NewReportsHandler(reader, logger.Nop())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int                           `json:"count"`
		Reports []*models.IntelligenceReport `json:"reports"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Reports, 2)
}

func TestReportsListLimit(t *testing.T) {
	reader := &fakeReportReader{reports: map[string]*models.IntelligenceReport{
		"sess-1": {SessionID: "sess-1", Intelligence: models.EmptyIntelligenceRecord()},
		"sess-2": {SessionID: "sess-2", Intelligence: models.EmptyIntelligenceRecord()},
	}}
	h := NewReportsHandler(reader, logger.Nop())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportsUnavailableWithoutArchive(t *testing.T) {
	h := NewReportsHandler(nil, logger.Nop())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.GetBySession(rec, sessionRequest(http.MethodGet, "/api/v1/sessions/sess-1/report", "sess-1"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
