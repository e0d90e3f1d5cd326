package services

import (
	"strconv"
	"strings"

	"honeypot-lab/internal/domain/models"
)

// Normalizer canonicalizes raw extracted identifiers so that the same
// real-world entity written different ways dedups to one value.
type Normalizer struct {
	countryPrefix string
}

// NewNormalizer creates a normalizer for the given country calling prefix
// (digits only, e.g. "91")
func NewNormalizer(countryPrefix string) *Normalizer {
	return &Normalizer{countryPrefix: countryPrefix}
}

// DigitsOnly strips every non-digit rune
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone canonicalizes a raw phone match to a bare 10-digit
// national number. Returns false when the candidate cannot be a valid
// mobile number after stripping prefixes.
func (n *Normalizer) NormalizePhone(raw string) (string, bool) {
	digits := DigitsOnly(raw)

	if n.countryPrefix != "" &&
		len(digits) == 10+len(n.countryPrefix) &&
		strings.HasPrefix(digits, n.countryPrefix) {
		digits = digits[len(n.countryPrefix):]
	}
	if len(digits) == 11 && digits[0] == '0' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return digits, true
}

// scale words and their rupee multipliers
var moneyScales = map[string]int64{
	"hundred":  100,
	"thousand": 1_000,
	"lakh":     100_000,
	"crore":    10_000_000,
}

// ParseMoney converts a matched amount and optional scale word into a
// MoneyAmount. Bare small numbers (below 100, no scale word) are noise
// from the permissive amount pattern and are rejected.
func ParseMoney(text, amount, scale string) (models.MoneyAmount, bool) {
	value, err := strconv.ParseInt(strings.ReplaceAll(amount, ",", ""), 10, 64)
	if err != nil || value <= 0 {
		return models.MoneyAmount{}, false
	}

	scale = strings.ToLower(scale)
	multiplier, scaled := moneyScales[scale]
	if scaled {
		value *= multiplier
	} else if value < 100 {
		return models.MoneyAmount{}, false
	}

	return models.MoneyAmount{Text: strings.TrimSpace(text), Value: value}, true
}

// orderedSet is a string set that preserves first-insertion order.
// Extraction output ordering mirrors the order entities appeared in the
// conversation, which analysts rely on.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) Add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) Has(v string) bool {
	_, ok := s.seen[v]
	return ok
}

// Values returns the set contents in insertion order, never nil
func (s *orderedSet) Values() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}

// mergeUnique appends items from incoming that are not already present in
// existing, preserving both orders
func mergeUnique(existing, incoming []string) []string {
	out := newOrderedSet()
	for _, v := range existing {
		out.Add(v)
	}
	for _, v := range incoming {
		out.Add(v)
	}
	return out.Values()
}
