package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	n := NewNormalizer("91")

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare ten digits", "9876543210", "9876543210", true},
		{"plus country code", "+91 9876543210", "9876543210", true},
		{"country code no plus", "919876543210", "9876543210", true},
		{"leading zero", "09876543210", "9876543210", true},
		{"dashes stripped", "+91-9876-543-210", "9876543210", true},
		{"too short", "987654321", "", false},
		{"too long", "98765432101234", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.NormalizePhone(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount string
		scale  string
		want   int64
		ok     bool
	}{
		{"plain amount", "Rs. 5000", "5000", "", 5000, true},
		{"comma grouped", "Rs. 150,000", "150,000", "", 150000, true},
		{"lakh", "5 lakh", "5", "lakh", 500000, true},
		{"crore", "2 crore", "2", "crore", 20000000, true},
		{"thousand", "50 thousand", "50", "thousand", 50000, true},
		{"small bare number rejected", "42", "42", "", 0, false},
		{"zero rejected", "0", "0", "", 0, false},
		{"small with scale kept", "5 hundred", "5", "hundred", 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMoney(tt.text, tt.amount, tt.scale)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got.Value)
				assert.Equal(t, tt.text, got.Text)
			}
		})
	}
}

func TestOrderedSetPreservesInsertionOrder(t *testing.T) {
	s := newOrderedSet()
	s.Add("b")
	s.Add("a")
	s.Add("b")
	s.Add("c")

	assert.Equal(t, []string{"b", "a", "c"}, s.Values())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
}

func TestMergeUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergeUnique([]string{"a", "b"}, []string{"b", "c", "a"}))
	assert.Equal(t, []string{}, mergeUnique(nil, nil))
}
