package services

import (
	"fmt"
	"strings"

	"honeypot-lab/internal/domain/models"
)

// BuildAgentNotes renders a session's accumulated intelligence as the
// pipe-joined one-line summary shown to human analysts. Identifier
// sections appear only when non-empty; classification lines always do.
func BuildAgentNotes(session *models.Session) string {
	intel := &session.Intelligence
	notes := []string{}

	if len(intel.UPIIDs) > 0 {
		notes = append(notes, "UPI IDs: "+strings.Join(intel.UPIIDs, ", "))
	}
	if len(intel.PhoneNumbers) > 0 {
		notes = append(notes, "Phone: "+strings.Join(intel.PhoneNumbers, ", "))
	}
	if len(intel.Emails) > 0 {
		notes = append(notes, "Emails: "+strings.Join(intel.Emails, ", "))
	}
	if len(intel.BankAccounts) > 0 {
		notes = append(notes, fmt.Sprintf("Bank accounts: %d", len(intel.BankAccounts)))
	}
	if len(intel.PhishingLinks) > 0 {
		notes = append(notes, fmt.Sprintf("Phishing links: %d", len(intel.PhishingLinks)))
	}
	if len(intel.BanksImpersonated) > 0 {
		notes = append(notes, "Impersonating: "+strings.Join(intel.BanksImpersonated, ", "))
	}
	if len(intel.AuthoritiesImpersonated) > 0 {
		notes = append(notes, "Fake authority: "+strings.Join(intel.AuthoritiesImpersonated, ", "))
	}
	if len(intel.AppsRequested) > 0 {
		notes = append(notes, "Requested apps: "+strings.Join(intel.AppsRequested, ", "))
	}
	if len(intel.MoneyAmounts) > 0 {
		amounts := make([]string, len(intel.MoneyAmounts))
		for i, a := range intel.MoneyAmounts {
			amounts[i] = fmt.Sprintf("₹%d", a.Value)
		}
		notes = append(notes, "Money mentioned: "+strings.Join(amounts, ", "))
	}

	notes = append(notes,
		"Scam type: "+string(intel.ScamType),
		"Tactic: "+string(intel.TacticUsed),
		"Urgency: "+string(intel.UrgencyLevel),
		"Sophistication: "+string(intel.SophisticationLevel),
		"Threat: "+string(intel.ThreatType),
		fmt.Sprintf("Messages: %d", session.MessagesExchanged),
	)

	return strings.Join(notes, " | ")
}
