package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"honeypot-lab/internal/domain/models"
)

func TestMergeEmptyRecordsIsIdentity(t *testing.T) {
	m := NewSessionMerger()

	got := m.Merge(models.EmptyIntelligenceRecord(), models.EmptyIntelligenceRecord())

	assert.Equal(t, models.EmptyIntelligenceRecord(), got)
}

func TestMergeUnionsIdentifiersInFirstSeenOrder(t *testing.T) {
	m := NewSessionMerger()

	existing := models.EmptyIntelligenceRecord()
	existing.PhoneNumbers = []string{"9876543210"}
	existing.Emails = []string{"a@fraud.example"}

	incoming := models.EmptyIntelligenceRecord()
	incoming.PhoneNumbers = []string{"9123456780", "9876543210"}
	incoming.Emails = []string{"b@fraud.example"}

	got := m.Merge(existing, incoming)

	assert.Equal(t, []string{"9876543210", "9123456780"}, got.PhoneNumbers)
	assert.Equal(t, []string{"a@fraud.example", "b@fraud.example"}, got.Emails)
}

func TestMergeUrgencyOnlyEscalates(t *testing.T) {
	m := NewSessionMerger()

	existing := models.EmptyIntelligenceRecord()
	existing.UrgencyLevel = models.UrgencyHigh

	incoming := models.EmptyIntelligenceRecord()
	incoming.UrgencyLevel = models.UrgencyMedium

	got := m.Merge(existing, incoming)
	assert.Equal(t, models.UrgencyHigh, got.UrgencyLevel)

	incoming.UrgencyLevel = models.UrgencyCritical
	got = m.Merge(existing, incoming)
	assert.Equal(t, models.UrgencyCritical, got.UrgencyLevel)
}

func TestMergeCategoricalReadsAreSticky(t *testing.T) {
	m := NewSessionMerger()

	existing := models.EmptyIntelligenceRecord()
	existing.ScamType = models.ScamBankingFraud
	existing.TacticUsed = models.TacticFear
	existing.ThreatType = models.ThreatLegal

	incoming := models.EmptyIntelligenceRecord()
	incoming.ScamType = models.ScamLottery
	incoming.TacticUsed = models.TacticGreed
	incoming.ThreatType = models.ThreatAccount

	got := m.Merge(existing, incoming)

	assert.Equal(t, models.ScamBankingFraud, got.ScamType)
	assert.Equal(t, models.TacticFear, got.TacticUsed)
	assert.Equal(t, models.ThreatLegal, got.ThreatType)
}

func TestMergeCategoricalDefaultsTakeIncoming(t *testing.T) {
	m := NewSessionMerger()

	incoming := models.EmptyIntelligenceRecord()
	incoming.ScamType = models.ScamLottery
	incoming.TacticUsed = models.TacticGreed
	incoming.ThreatType = models.ThreatFalseReward

	got := m.Merge(models.EmptyIntelligenceRecord(), incoming)

	assert.Equal(t, models.ScamLottery, got.ScamType)
	assert.Equal(t, models.TacticGreed, got.TacticUsed)
	assert.Equal(t, models.ThreatFalseReward, got.ThreatType)
}

func TestMergeSophisticationTracksLatest(t *testing.T) {
	m := NewSessionMerger()

	existing := models.EmptyIntelligenceRecord()
	existing.SophisticationLevel = models.SophisticationHigh

	incoming := models.EmptyIntelligenceRecord()
	incoming.SophisticationLevel = models.SophisticationLow

	got := m.Merge(existing, incoming)
	assert.Equal(t, models.SophisticationLow, got.SophisticationLevel)
}

func TestMergeAccumulatesMetadata(t *testing.T) {
	m := NewSessionMerger()

	existing := models.EmptyIntelligenceRecord()
	existing.MessageLength = 40
	existing.HasNumbers = true
	existing.MoneyAmounts = []models.MoneyAmount{{Text: "5 lakh", Value: 500000}}

	incoming := models.EmptyIntelligenceRecord()
	incoming.MessageLength = 60
	incoming.HasLinks = true
	incoming.MoneyAmounts = []models.MoneyAmount{{Text: "5 lakh", Value: 500000}}

	got := m.Merge(existing, incoming)

	assert.Equal(t, 100, got.MessageLength)
	assert.True(t, got.HasNumbers)
	assert.True(t, got.HasLinks)
	// money mentions are evidence, repeats are kept
	assert.Len(t, got.MoneyAmounts, 2)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	m := NewSessionMerger()

	existing := models.EmptyIntelligenceRecord()
	existing.PhoneNumbers = []string{"9876543210"}

	incoming := models.EmptyIntelligenceRecord()
	incoming.PhoneNumbers = []string{"9123456780"}

	_ = m.Merge(existing, incoming)

	assert.Equal(t, []string{"9876543210"}, existing.PhoneNumbers)
	assert.Equal(t, []string{"9123456780"}, incoming.PhoneNumbers)
}
