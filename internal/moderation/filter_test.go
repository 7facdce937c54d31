package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanCleanContent(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain feedback", "The dashboard loads quickly and the new filters are great."},
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
		{"term inside word", "I took a class on glass blowing, it was classy."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			assert.False(t, got.HasIssue)
			assert.Equal(t, SeverityNone, got.Severity)
			assert.Empty(t, got.MatchedTerms)
			assert.Empty(t, got.Warning)
		})
	}
}

func TestScanSevereTerms(t *testing.T) {
	got := Scan("This is complete shit and you know it")

	assert.True(t, got.HasIssue)
	assert.Equal(t, SeveritySevere, got.Severity)
	assert.Equal(t, warningSevere, got.Warning)
	assert.Contains(t, got.MatchedTerms, "shit")
}

func TestScanMildTerms(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"spam phrase", "click here to get your reward today", "click here"},
		{"offensive but not severe", "the onboarding flow felt dumb to me", "dumb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			assert.True(t, got.HasIssue)
			assert.Equal(t, SeverityMild, got.Severity)
			assert.Equal(t, warningMild, got.Warning)
			assert.Contains(t, got.MatchedTerms, tt.expected)
		})
	}
}

func TestScanStatisticalSignals(t *testing.T) {
	t.Run("excessive caps", func(t *testing.T) {
		got := Scan("AMAZING PRODUCT BEST EVER")
		assert.True(t, got.HasIssue)
		assert.Equal(t, SeverityMild, got.Severity)
		assert.Contains(t, got.MatchedTerms, capsSignal)
	})

	t.Run("short caps text is ignored", func(t *testing.T) {
		got := Scan("WOW")
		assert.False(t, got.HasIssue)
	})

	t.Run("excessive punctuation", func(t *testing.T) {
		got := Scan("best product ever!!!!")
		assert.True(t, got.HasIssue)
		assert.Equal(t, SeverityMild, got.Severity)
		assert.Contains(t, got.MatchedTerms, punctuationSignal)
	})

	t.Run("three exclamations pass", func(t *testing.T) {
		got := Scan("really nice update!!!")
		assert.False(t, got.HasIssue)
	})
}

func TestScanSevereWinsOverMild(t *testing.T) {
	got := Scan("fuck this, click here for free money")

	assert.Equal(t, SeveritySevere, got.Severity)
	assert.Contains(t, got.MatchedTerms, "fuck")
	assert.Contains(t, got.MatchedTerms, "click here")
	assert.Contains(t, got.MatchedTerms, "free money")
}
