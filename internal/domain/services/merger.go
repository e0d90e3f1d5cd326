package services

import (
	"honeypot-lab/internal/domain/models"
)

// SessionMerger folds per-message intelligence into a session's
// accumulated record. Identifier sets only grow, urgency only escalates,
// and the first confident categorical read of a conversation sticks:
// later messages never erase what earlier ones established.
type SessionMerger struct{}

// NewSessionMerger creates a merger
func NewSessionMerger() *SessionMerger {
	return &SessionMerger{}
}

// Merge combines accumulated and incoming records into a new record.
// Neither input is mutated.
func (m *SessionMerger) Merge(existing, incoming models.IntelligenceRecord) models.IntelligenceRecord {
	out := existing

	out.Emails = mergeUnique(existing.Emails, incoming.Emails)
	out.UPIIDs = mergeUnique(existing.UPIIDs, incoming.UPIIDs)
	out.PhoneNumbers = mergeUnique(existing.PhoneNumbers, incoming.PhoneNumbers)
	out.PhishingLinks = mergeUnique(existing.PhishingLinks, incoming.PhishingLinks)
	out.BankAccounts = mergeUnique(existing.BankAccounts, incoming.BankAccounts)
	out.IFSCCodes = mergeUnique(existing.IFSCCodes, incoming.IFSCCodes)
	out.CryptoWallets = mergeUnique(existing.CryptoWallets, incoming.CryptoWallets)
	out.TransactionIDs = mergeUnique(existing.TransactionIDs, incoming.TransactionIDs)
	out.OrderIDs = mergeUnique(existing.OrderIDs, incoming.OrderIDs)
	out.BanksImpersonated = mergeUnique(existing.BanksImpersonated, incoming.BanksImpersonated)
	out.AuthoritiesImpersonated = mergeUnique(existing.AuthoritiesImpersonated, incoming.AuthoritiesImpersonated)
	out.AppsRequested = mergeUnique(existing.AppsRequested, incoming.AppsRequested)
	out.SuspiciousKeywords = mergeUnique(existing.SuspiciousKeywords, incoming.SuspiciousKeywords)
	out.CredibilityMarkers = mergeUnique(existing.CredibilityMarkers, incoming.CredibilityMarkers)

	// Every money mention is evidence; repeats across messages are kept
	out.MoneyAmounts = append(append([]models.MoneyAmount{}, existing.MoneyAmounts...), incoming.MoneyAmounts...)

	out.MessageLength = existing.MessageLength + incoming.MessageLength
	out.HasNumbers = existing.HasNumbers || incoming.HasNumbers
	out.HasLinks = existing.HasLinks || incoming.HasLinks

	out.UrgencyLevel = models.MaxUrgency(existing.UrgencyLevel, incoming.UrgencyLevel)

	// Categorical reads stick once established
	if existing.TacticUsed == models.TacticUnknown {
		out.TacticUsed = incoming.TacticUsed
	}
	if existing.ThreatType == models.ThreatGeneric {
		out.ThreatType = incoming.ThreatType
	}
	if existing.ScamType == models.ScamUnknown {
		out.ScamType = incoming.ScamType
	}

	// Sophistication tracks the most recent message: scammers reveal
	// their real polish over time
	out.SophisticationLevel = incoming.SophisticationLevel

	return out
}
