package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// memStore is an in-memory SessionStore for service tests
type memStore struct {
	sessions map[string]models.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]models.Session)}
}

func (s *memStore) Get(_ context.Context, id string) (*models.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := session
	return &cp, nil
}

func (s *memStore) Put(_ context.Context, session *models.Session) error {
	s.sessions[session.ID] = *session
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestService(t *testing.T, st SessionStore, sender ReportSender, cb config.CallbackConfig) *SessionService {
	t.Helper()
	lib, err := NewPatternLibrary(DefaultPatternConfig())
	require.NoError(t, err)
	extractor := NewExtractor(lib, testEngineConfig(), logger.Nop())
	scorer := NewRiskScorer(testScoringConfig())
	return NewSessionService(st, extractor, scorer, NewStallReplyGenerator(),
		sender, nil, testScoringConfig(), cb, logger.Nop())
}

func testCallbackConfig(url string) config.CallbackConfig {
	return config.CallbackConfig{
		Enabled:              true,
		URL:                  url,
		Timeout:              5 * time.Second,
		MessageThreshold:     6,
		MinMessagesWithIntel: 2,
	}
}

const scammyMessage = "Pay the fee at https://bit.ly/pay-now to claim your prize immediately"

func TestHandleMessageCreatesSession(t *testing.T) {
	st := newMemStore()
	svc := newTestService(t, st, nil, config.CallbackConfig{})

	result, err := svc.HandleMessage(context.Background(), "sess-1", "My number is 9876543210 call me.")
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.NotEmpty(t, result.Reply)
	assert.False(t, result.ScamDetected)

	session, err := svc.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, session.MessagesExchanged)
	assert.Equal(t, []string{"9876543210"}, session.Intelligence.PhoneNumbers)
	assert.NotEmpty(t, session.AgentNotes)
}

func TestHandleMessageAccumulatesAcrossTurns(t *testing.T) {
	st := newMemStore()
	svc := newTestService(t, st, nil, config.CallbackConfig{})
	ctx := context.Background()

	_, err := svc.HandleMessage(ctx, "sess-2", "Call me on 9876543210")
	require.NoError(t, err)
	_, err = svc.HandleMessage(ctx, "sess-2", "Or reach 9123456780, pay to merchant@paytm")
	require.NoError(t, err)

	session, err := svc.GetSession(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, 2, session.MessagesExchanged)
	assert.Equal(t, []string{"9876543210", "9123456780"}, session.Intelligence.PhoneNumbers)
	assert.Equal(t, []string{"merchant@paytm"}, session.Intelligence.UPIIDs)
}

func TestHandleMessageScamFlagIsSticky(t *testing.T) {
	st := newMemStore()
	svc := newTestService(t, st, nil, config.CallbackConfig{})
	ctx := context.Background()

	result, err := svc.HandleMessage(ctx, "sess-3", scammyMessage)
	require.NoError(t, err)
	assert.True(t, result.ScamDetected)
	assert.GreaterOrEqual(t, result.RiskScore, 40)

	// a harmless follow-up does not clear the flag
	result, err = svc.HandleMessage(ctx, "sess-3", "ok")
	require.NoError(t, err)
	assert.True(t, result.ScamDetected)
}

func TestCallbackFiresOnceCriticalIntelPresent(t *testing.T) {
	received := make(chan models.IntelligenceReport, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report models.IntelligenceReport
		_ = json.NewDecoder(r.Body).Decode(&report)
		received <- report
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	st := newMemStore()
	cb := testCallbackConfig(server.URL)
	sender := NewCallbackClient(cb, logger.Nop())
	svc := newTestService(t, st, sender, cb)
	ctx := context.Background()

	// first message: scam confirmed with critical intel, but only one message
	_, err := svc.HandleMessage(ctx, "sess-4", scammyMessage)
	require.NoError(t, err)

	select {
	case <-received:
		t.Fatal("callback fired after a single message")
	case <-time.After(100 * time.Millisecond):
	}

	// second message crosses the min-messages-with-intel line
	_, err = svc.HandleMessage(ctx, "sess-4", "ok sir tell me more")
	require.NoError(t, err)

	select {
	case report := <-received:
		assert.Equal(t, "sess-4", report.SessionID)
		assert.True(t, report.ScamDetected)
		assert.Equal(t, 2, report.MessagesExchanged)
		assert.NotEmpty(t, report.Intelligence.PhishingLinks)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}

	session, err := svc.GetSession(ctx, "sess-4")
	require.NoError(t, err)
	assert.True(t, session.CallbackSent)
}

func TestCallbackFlagRevertsOnDeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	st := newMemStore()
	cb := testCallbackConfig(server.URL)
	sender := NewCallbackClient(cb, logger.Nop())
	svc := newTestService(t, st, sender, cb)
	ctx := context.Background()

	_, err := svc.HandleMessage(ctx, "sess-5", scammyMessage)
	require.NoError(t, err)
	_, err = svc.HandleMessage(ctx, "sess-5", "ok sir")
	require.NoError(t, err)

	// flag is set before delivery and reverted once delivery fails
	assert.Eventually(t, func() bool {
		session, err := svc.GetSession(ctx, "sess-5")
		return err == nil && !session.CallbackSent
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFinalizeForcesDelivery(t *testing.T) {
	received := make(chan models.IntelligenceReport, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report models.IntelligenceReport
		_ = json.NewDecoder(r.Body).Decode(&report)
		received <- report
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	st := newMemStore()
	cb := testCallbackConfig(server.URL)
	sender := NewCallbackClient(cb, logger.Nop())
	svc := newTestService(t, st, sender, cb)
	ctx := context.Background()

	_, err := svc.HandleMessage(ctx, "sess-6", "hello there")
	require.NoError(t, err)

	report, err := svc.Finalize(ctx, "sess-6")
	require.NoError(t, err)
	assert.Equal(t, "sess-6", report.SessionID)
	assert.False(t, report.ScamDetected)

	select {
	case got := <-received:
		assert.Equal(t, "sess-6", got.SessionID)
	case <-time.After(time.Second):
		t.Fatal("finalize did not deliver the report")
	}

	session, err := svc.GetSession(ctx, "sess-6")
	require.NoError(t, err)
	assert.True(t, session.CallbackSent)
}

func TestFinalizeUnknownSession(t *testing.T) {
	svc := newTestService(t, newMemStore(), nil, config.CallbackConfig{})

	_, err := svc.Finalize(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetAnalytics(t *testing.T) {
	st := newMemStore()
	svc := newTestService(t, st, nil, config.CallbackConfig{})
	ctx := context.Background()

	_, err := svc.HandleMessage(ctx, "sess-7", "Call me on 9876543210")
	require.NoError(t, err)

	analytics, err := svc.GetAnalytics(ctx, "sess-7")
	require.NoError(t, err)

	assert.Equal(t, "sess-7", analytics.SessionID)
	assert.Equal(t, 1, analytics.Summary.Messages)
	// 1 message * 10 + 1 phone * 40
	assert.Equal(t, 50, analytics.Summary.EngagementScore)
	assert.Equal(t, 1, analytics.Engagement.IdentifiersExtracted)
	assert.True(t, analytics.Behavior.ContainsNumbers)
}

func TestEngagementScoreIsCapped(t *testing.T) {
	session := models.NewSession("sess-8")
	session.MessagesExchanged = 50
	for _, n := range []string{"9000000001", "9000000002", "9000000003", "9000000004",
		"9000000005", "9000000006", "9000000007", "9000000008", "9000000009", "9000000010"} {
		session.Intelligence.PhoneNumbers = append(session.Intelligence.PhoneNumbers, n)
	}
	session.Intelligence.BankAccounts = []string{"123456789", "234567890", "345678901"}

	assert.Equal(t, 1000, engagementScore(session))
}

func TestGetSessionNotFound(t *testing.T) {
	svc := newTestService(t, newMemStore(), nil, config.CallbackConfig{})

	_, err := svc.GetSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
