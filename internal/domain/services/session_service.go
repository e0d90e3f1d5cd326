package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// ErrSessionNotFound is returned by a SessionStore when no session exists
// for the given id
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists conversation sessions
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// ReportArchive persists finalized intelligence reports for audit
type ReportArchive interface {
	Create(ctx context.Context, report *models.IntelligenceReport) error
}

// MessageResult is the response to one inbound honeypot message
type MessageResult struct {
	Status       string `json:"status"`
	Reply        string `json:"reply"`
	SessionID    string `json:"sessionId"`
	ScamDetected bool   `json:"scamDetected"`
	RiskScore    int    `json:"riskScore"`
}

// Engagement score weights, applied per captured identifier
const (
	engagementPerMessage = 10
	engagementPerUPI     = 50
	engagementPerPhone   = 40
	engagementPerEmail   = 35
	engagementPerLink    = 30
	engagementPerBank    = 60
	engagementPerIFSC    = 45
	engagementPerCrypto  = 55
	engagementScoreCap   = 1000
)

// SessionService orchestrates the per-message pipeline: load session,
// extract, merge, rescore, regenerate notes, save, and deliver the
// result callback once the trigger conditions hold.
type SessionService struct {
	store     SessionStore
	extractor *Extractor
	merger    *SessionMerger
	scorer    *RiskScorer
	replies   ReplyGenerator
	stall     *StallReplyGenerator
	sender    ReportSender  // nil when callbacks are disabled
	archive   ReportArchive // nil when no database is configured
	scoring   config.ScoringConfig
	callback  config.CallbackConfig
	log       *logger.Logger
}

// NewSessionService wires the pipeline. sender and archive may be nil.
func NewSessionService(
	store SessionStore,
	extractor *Extractor,
	scorer *RiskScorer,
	replies ReplyGenerator,
	sender ReportSender,
	archive ReportArchive,
	scoring config.ScoringConfig,
	callback config.CallbackConfig,
	log *logger.Logger,
) *SessionService {
	return &SessionService{
		store:     store,
		extractor: extractor,
		merger:    NewSessionMerger(),
		scorer:    scorer,
		replies:   replies,
		stall:     NewStallReplyGenerator(),
		sender:    sender,
		archive:   archive,
		scoring:   scoring,
		callback:  callback,
		log:       log.WithComponent("session_service"),
	}
}

// HandleMessage runs the full pipeline for one inbound scammer message
func (s *SessionService) HandleMessage(ctx context.Context, sessionID, text string) (*MessageResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		session = models.NewSession(sessionID)
		s.log.Info().Str("session_id", sessionID).Msg("new session started")
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	record := s.extractor.Extract(text)
	session.Intelligence = s.merger.Merge(session.Intelligence, record)
	session.MessagesExchanged++

	assessment := s.scorer.Score(&session.Intelligence)
	if assessment.Score >= s.scoring.ScamScoreThreshold {
		session.ScamDetected = true
	}

	session.AgentNotes = BuildAgentNotes(session)
	session.UpdatedAt = time.Now()

	if err := s.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.maybeSendCallback(ctx, session, assessment)

	reply, err := s.replies.GenerateReply(ctx, text, session.Intelligence.UrgencyLevel)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("reply generation failed, stalling")
		reply, _ = s.stall.GenerateReply(ctx, text, session.Intelligence.UrgencyLevel)
	}

	return &MessageResult{
		Status:       "success",
		Reply:        reply,
		SessionID:    session.ID,
		ScamDetected: session.ScamDetected,
		RiskScore:    assessment.Score,
	}, nil
}

// maybeSendCallback fires the result callback once a confirmed scam has
// either run long enough or yielded a critical identifier early. The
// sent flag is set before the async delivery to prevent duplicates and
// reverted on failure so the next message retries.
func (s *SessionService) maybeSendCallback(ctx context.Context, session *models.Session, assessment models.RiskAssessment) {
	if s.sender == nil || !s.callback.Enabled {
		return
	}
	if !session.ScamDetected || session.CallbackSent {
		return
	}
	ready := session.MessagesExchanged >= s.callback.MessageThreshold ||
		(session.MessagesExchanged >= s.callback.MinMessagesWithIntel &&
			session.Intelligence.HasCriticalIdentifiers())
	if !ready {
		return
	}

	session.CallbackSent = true
	if err := s.store.Put(ctx, session); err != nil {
		s.log.Error().Err(err).Str("session_id", session.ID).Msg("failed to mark callback sent")
		session.CallbackSent = false
		return
	}

	report := s.buildReport(session, assessment)
	go s.deliverReport(session.ID, report)
}

func (s *SessionService) deliverReport(sessionID string, report *models.IntelligenceReport) {
	ctx, cancel := context.WithTimeout(context.Background(), s.callback.Timeout)
	defer cancel()

	if err := s.sender.Send(ctx, report); err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("callback delivery failed, will retry")
		s.revertCallbackSent(ctx, sessionID)
		return
	}
	s.archiveReport(ctx, report)
}

func (s *SessionService) revertCallbackSent(ctx context.Context, sessionID string) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to reload session for callback retry")
		return
	}
	session.CallbackSent = false
	if err := s.store.Put(ctx, session); err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to reset callback flag")
	}
}

func (s *SessionService) archiveReport(ctx context.Context, report *models.IntelligenceReport) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Create(ctx, report); err != nil {
		s.log.Error().Err(err).Str("session_id", report.SessionID).Msg("failed to archive report")
	}
}

func (s *SessionService) buildReport(session *models.Session, assessment models.RiskAssessment) *models.IntelligenceReport {
	return &models.IntelligenceReport{
		SessionID:         session.ID,
		ScamDetected:      session.ScamDetected,
		MessagesExchanged: session.MessagesExchanged,
		Intelligence:      session.Intelligence,
		AgentNotes:        session.AgentNotes,
		RiskScore:         assessment.Score,
		RiskLevel:         assessment.Level,
		CreatedAt:         time.Now(),
	}
}

// GetSession returns the stored session for an id
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// GetAnalytics builds the analytics rollup for a session
func (s *SessionService) GetAnalytics(ctx context.Context, sessionID string) (*models.SessionAnalytics, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intel := &session.Intelligence
	assessment := s.scorer.Score(intel)

	avgLength := 0
	if session.MessagesExchanged > 0 {
		avgLength = intel.MessageLength / session.MessagesExchanged
	}

	return &models.SessionAnalytics{
		SessionID: session.ID,
		Summary: models.SessionAnalyticsSummary{
			ScamType:        intel.ScamType,
			Sophistication:  intel.SophisticationLevel,
			UrgencyLevel:    intel.UrgencyLevel,
			ThreatType:      intel.ThreatType,
			TacticUsed:      intel.TacticUsed,
			EngagementScore: engagementScore(session),
			RiskScore:       assessment.Score,
			RiskLevel:       assessment.Level,
			Messages:        session.MessagesExchanged,
		},
		Intelligence: session.Intelligence,
		Behavior: models.SessionAnalyticsBehavior{
			CredibilityMarkers:   intel.CredibilityMarkers,
			SuspiciousKeywords:   intel.SuspiciousKeywords,
			AverageMessageLength: avgLength,
			ContainsNumbers:      intel.HasNumbers,
			ContainsLinks:        intel.HasLinks,
		},
		Engagement: models.SessionAnalyticsEngagement{
			IdentifiersExtracted: intel.ContactCount(),
			ScamDetected:         session.ScamDetected,
		},
	}, nil
}

// Finalize force-sends the result callback for a session regardless of
// trigger conditions and returns the delivered report
func (s *SessionService) Finalize(ctx context.Context, sessionID string) (*models.IntelligenceReport, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	assessment := s.scorer.Score(&session.Intelligence)
	report := s.buildReport(session, assessment)

	if s.sender != nil {
		if err := s.sender.Send(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to deliver final report: %w", err)
		}
	}

	session.CallbackSent = true
	session.UpdatedAt = time.Now()
	if err := s.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.archiveReport(ctx, report)
	return report, nil
}

func engagementScore(session *models.Session) int {
	intel := &session.Intelligence
	score := session.MessagesExchanged*engagementPerMessage +
		len(intel.UPIIDs)*engagementPerUPI +
		len(intel.PhoneNumbers)*engagementPerPhone +
		len(intel.Emails)*engagementPerEmail +
		len(intel.PhishingLinks)*engagementPerLink +
		len(intel.BankAccounts)*engagementPerBank +
		len(intel.IFSCCodes)*engagementPerIFSC +
		len(intel.CryptoWallets)*engagementPerCrypto
	if score > engagementScoreCap {
		score = engagementScoreCap
	}
	return score
}
