package services

import (
	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
)

// RiskScorer computes an additive 0-100 risk score over an intelligence
// record. Weights and tier thresholds come from configuration so analysts
// can retune scoring without a redeploy.
type RiskScorer struct {
	cfg config.ScoringConfig
}

// NewRiskScorer creates a scorer with the given weights
func NewRiskScorer(cfg config.ScoringConfig) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

// Score assesses a record. Factors name each signal that contributed,
// in evaluation order.
func (s *RiskScorer) Score(record *models.IntelligenceRecord) models.RiskAssessment {
	score := 0
	factors := []string{}

	add := func(points int, factor string) {
		score += points
		factors = append(factors, factor)
	}

	if len(record.PhoneNumbers) > 2 {
		add(s.cfg.MultiplePhones, "Multiple phone numbers")
	}
	if len(record.PhishingLinks) > 0 {
		add(s.cfg.PhishingLinks, "Contains suspicious URLs")
	}
	if len(record.UPIIDs) > 0 {
		add(s.cfg.UPIIDs, "Payment request detected")
	}

	switch keywords := len(record.SuspiciousKeywords); {
	case keywords > 10:
		add(s.cfg.KeywordsHigh, "High phishing keyword density")
	case keywords > 5:
		add(s.cfg.KeywordsModerate, "Moderate phishing keywords")
	case keywords > 0:
		add(s.cfg.KeywordsLow, "Some phishing indicators")
	}

	if hasKeyword(record, FlagCredentialRequest) {
		add(s.cfg.CredentialRequest, "Requests credentials/OTP")
	}
	if hasKeyword(record, FlagURLShortener) {
		add(s.cfg.URLShortener, "Uses URL shortener")
	}
	if hasKeyword(record, FlagSuspiciousTLD) {
		add(s.cfg.SuspiciousTLD, "Suspicious domain extension")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return models.RiskAssessment{
		Score:   score,
		Level:   s.level(score),
		Factors: factors,
	}
}

func (s *RiskScorer) level(score int) models.RiskLevel {
	switch {
	case score >= s.cfg.HighThreshold:
		return models.RiskHigh
	case score >= s.cfg.MediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func hasKeyword(record *models.IntelligenceRecord, keyword string) bool {
	for _, kw := range record.SuspiciousKeywords {
		if kw == keyword {
			return true
		}
	}
	return false
}
