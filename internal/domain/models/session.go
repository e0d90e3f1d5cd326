package models

import "time"

// Session is the long-lived state of one honeypot conversation.
// It is persisted in the external session store and mutated only between
// a load and a save of the same request; callers must not merge into the
// same session concurrently (single-writer-per-session discipline).
type Session struct {
	ID                string             `json:"sessionId"`
	MessagesExchanged int                `json:"totalMessagesExchanged"`
	ScamDetected      bool               `json:"scamDetected"`
	CallbackSent      bool               `json:"callbackSent"`
	Intelligence      IntelligenceRecord `json:"extractedIntelligence"`
	AgentNotes        string             `json:"agentNotes"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// NewSession creates an empty session for the first message of a conversation
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Intelligence: EmptyIntelligenceRecord(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
