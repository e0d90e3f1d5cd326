package models

import (
	"time"

	"github.com/google/uuid"
)

// IntelligenceReport is the finalized payload delivered to the result
// callback and archived for audit. Shape matches the callback contract.
type IntelligenceReport struct {
	ID                uuid.UUID          `json:"id,omitempty"`
	SessionID         string             `json:"sessionId"`
	ScamDetected      bool               `json:"scamDetected"`
	MessagesExchanged int                `json:"totalMessagesExchanged"`
	Intelligence      IntelligenceRecord `json:"extractedIntelligence"`
	AgentNotes        string             `json:"agentNotes"`
	RiskScore         int                `json:"riskScore"`
	RiskLevel         RiskLevel          `json:"riskLevel"`
	CreatedAt         time.Time          `json:"createdAt,omitempty"`
}

// SessionAnalyticsSummary is the headline block of an analytics rollup
type SessionAnalyticsSummary struct {
	ScamType        ScamType            `json:"scamType"`
	Sophistication  SophisticationLevel `json:"sophistication"`
	UrgencyLevel    UrgencyLevel        `json:"urgencyLevel"`
	ThreatType      ThreatType          `json:"threatType"`
	TacticUsed      Tactic              `json:"tacticUsed"`
	EngagementScore int                 `json:"engagementScore"`
	RiskScore       int                 `json:"riskScore"`
	RiskLevel       RiskLevel           `json:"riskLevel"`
	Messages        int                 `json:"messagesExchanged"`
}

// SessionAnalyticsBehavior summarizes behavioral signals for a conversation
type SessionAnalyticsBehavior struct {
	CredibilityMarkers   []string `json:"credibilityMarkers"`
	SuspiciousKeywords   []string `json:"suspiciousKeywords"`
	AverageMessageLength int      `json:"averageMessageLength"`
	ContainsNumbers      bool     `json:"containsNumbers"`
	ContainsLinks        bool     `json:"containsLinks"`
}

// SessionAnalyticsEngagement summarizes how productive the engagement was
type SessionAnalyticsEngagement struct {
	IdentifiersExtracted int  `json:"identifiersExtracted"`
	ScamDetected         bool `json:"scamDetected"`
}

// SessionAnalytics is the analytics rollup for one conversation
type SessionAnalytics struct {
	SessionID    string                     `json:"sessionId"`
	Summary      SessionAnalyticsSummary    `json:"summary"`
	Intelligence IntelligenceRecord         `json:"intelligence"`
	Behavior     SessionAnalyticsBehavior   `json:"behavior"`
	Engagement   SessionAnalyticsEngagement `json:"engagement"`
}
