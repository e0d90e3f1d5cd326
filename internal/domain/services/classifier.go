package services

import (
	"strings"

	"honeypot-lab/internal/domain/models"
)

// Classifier derives behavioral signals from a message: urgency pressure,
// the dominant social-engineering tactic, threat and scam categories,
// sophistication, and credibility markers. All signals are deterministic
// functions of the pattern library; no model inference is involved.
type Classifier struct {
	patterns *PatternLibrary
}

// NewClassifier creates a classifier over a compiled pattern library
func NewClassifier(patterns *PatternLibrary) *Classifier {
	return &Classifier{patterns: patterns}
}

// Classification is the full behavioral read of one message
type Classification struct {
	Urgency            models.UrgencyLevel
	Tactic             models.Tactic
	Threat             models.ThreatType
	Scam               models.ScamType
	Sophistication     models.SophisticationLevel
	CredibilityMarkers []string
}

// Classify evaluates every behavioral signal against a single message.
// The text parameter keeps original casing; rules that are case-sensitive
// (salutations) need it.
func (c *Classifier) Classify(text string) Classification {
	lower := strings.ToLower(text)

	return Classification{
		Urgency:            c.classifyUrgency(lower),
		Tactic:             c.classifyTactic(lower),
		Threat:             c.classifyThreat(lower),
		Scam:               c.classifyScam(lower),
		Sophistication:     c.assessSophistication(text, lower),
		CredibilityMarkers: c.detectCredibilityMarkers(lower),
	}
}

func (c *Classifier) classifyUrgency(lower string) models.UrgencyLevel {
	count := 0
	for _, kw := range c.patterns.UrgencyKeywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	switch {
	case count >= 5:
		return models.UrgencyCritical
	case count >= 3:
		return models.UrgencyHigh
	case count >= 1:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

// classifyTactic picks the category with the strictly highest keyword hit
// count. Ties resolve to the earlier category in declaration order.
func (c *Classifier) classifyTactic(lower string) models.Tactic {
	best := models.TacticUnknown
	bestCount := 0
	for _, cat := range c.patterns.TacticCategories {
		count := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > bestCount {
			best = cat.Tactic
			bestCount = count
		}
	}
	return best
}

func (c *Classifier) classifyThreat(lower string) models.ThreatType {
	for _, rule := range c.patterns.ThreatRules {
		if rule.Rule.MatchString(lower) {
			return rule.Type
		}
	}
	return models.ThreatGeneric
}

func (c *Classifier) classifyScam(lower string) models.ScamType {
	for _, rule := range c.patterns.ScamRules {
		if rule.Rule.MatchString(lower) {
			return rule.Type
		}
	}
	return models.ScamUnknown
}

// assessSophistication scores four polish signals: authority phrasing,
// reference phrasing, a formal salutation, and directing the victim to a
// link or an app
func (c *Classifier) assessSophistication(text, lower string) models.SophisticationLevel {
	score := 0

	if c.patterns.AuthorityPhrase.MatchString(lower) {
		score++
	}
	if c.patterns.ReferencePhrase.MatchString(lower) {
		score++
	}
	for _, token := range c.patterns.SalutationTokens {
		if strings.Contains(text, token) {
			score++
			break
		}
	}
	if c.patterns.Link.MatchString(lower) || c.mentionsApp(lower) {
		score++
	}

	switch {
	case score >= 3:
		return models.SophisticationHigh
	case score >= 2:
		return models.SophisticationMedium
	default:
		return models.SophisticationLow
	}
}

func (c *Classifier) mentionsApp(lower string) bool {
	for _, app := range c.patterns.Apps {
		if strings.Contains(lower, app) {
			return true
		}
	}
	return false
}

func (c *Classifier) detectCredibilityMarkers(lower string) []string {
	markers := []string{}
	for _, rule := range c.patterns.CredibilityRules {
		if rule.Rule.MatchString(lower) {
			markers = append(markers, rule.Marker)
		}
	}
	return markers
}
