package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatternLibraryCompilesDefaults(t *testing.T) {
	lib, err := NewPatternLibrary(DefaultPatternConfig())
	require.NoError(t, err)
	require.NotNil(t, lib)

	assert.NotEmpty(t, lib.Version)
	assert.NotEmpty(t, lib.SuspiciousKeywords)
	assert.NotEmpty(t, lib.UrgencyKeywords)
	assert.Len(t, lib.ThreatRules, 4)
	assert.Len(t, lib.ScamRules, 7)
	assert.Len(t, lib.CredibilityRules, 4)
	assert.Len(t, lib.TacticCategories, 5)
}

func TestNewPatternLibraryRejectsInvalidRule(t *testing.T) {
	cfg := DefaultPatternConfig()
	cfg.PhonePattern = "(unclosed"

	lib, err := NewPatternLibrary(cfg)
	require.Error(t, err)
	assert.Nil(t, lib)
	assert.Contains(t, err.Error(), "phone")
}

func TestNewPatternLibraryRejectsInvalidCategoryRule(t *testing.T) {
	cfg := DefaultPatternConfig()
	cfg.ScamRules[0].Pattern = "[bad"

	_, err := NewPatternLibrary(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scam:")
}
