package moderation

import (
	"regexp"
	"strings"
)

// Severity of a local content scan. Mild findings are advisory; severe
// findings block submission before the remote classifier is ever called.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityMild   Severity = "mild"
	SeveritySevere Severity = "severe"
)

// Result of a local scan. MatchedTerms lists every denylist term and
// statistical signal label that fired.
type Result struct {
	HasIssue     bool
	Severity     Severity
	Warning      string
	MatchedTerms []string
}

const (
	warningSevere = "Your feedback contains inappropriate language. Please be respectful."
	warningMild   = "Your feedback may contain inappropriate or spam-like content. Please review before submitting."

	capsSignal        = "EXCESSIVE CAPS"
	punctuationSignal = "excessive punctuation"
)

var denylist = []string{
	// Common profanity
	"fuck", "shit", "damn", "bitch", "asshole", "bastard", "crap",
	"hell", "piss", "dick", "cock", "pussy", "ass", "whore", "slut",

	// Offensive terms
	"stupid", "idiot", "moron", "dumb", "retard", "loser",

	// Spam indicators
	"click here", "buy now", "free money", "earn cash", "make money fast",
	"viagra", "casino", "lottery", "prize", "winner",

	// Aggressive language
	"hate", "kill", "die", "death", "hurt", "attack",
}

// Terms that escalate the verdict to severe on their own.
var offensive = map[string]struct{}{
	"fuck":    {},
	"shit":    {},
	"bitch":   {},
	"asshole": {},
	"whore":   {},
	"slut":    {},
}

var termPatterns = compileTermPatterns()

func compileTermPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(denylist))
	for _, term := range denylist {
		// Word boundaries keep "ass" from matching inside "class".
		patterns[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return patterns
}

// Scan runs the local lexical check. It is pure and cheap enough to re-run
// on every content change.
func Scan(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Severity: SeverityNone, MatchedTerms: []string{}}
	}

	lower := strings.ToLower(text)
	matched := []string{}

	for _, term := range denylist {
		if termPatterns[term].MatchString(lower) {
			matched = append(matched, term)
		}
	}

	if capsRatio(text) > 0.7 && len(text) > 10 {
		matched = append(matched, capsSignal)
	}

	if strings.Count(text, "!") > 3 {
		matched = append(matched, punctuationSignal)
	}

	if len(matched) == 0 {
		return Result{Severity: SeverityNone, MatchedTerms: []string{}}
	}

	severity := SeverityMild
	warning := warningMild
	for _, term := range matched {
		if _, ok := offensive[term]; ok {
			severity = SeveritySevere
			warning = warningSevere
			break
		}
	}

	return Result{
		HasIssue:     true,
		Severity:     severity,
		Warning:      warning,
		MatchedTerms: matched,
	}
}

func capsRatio(text string) float64 {
	upper, total := 0, 0
	for _, r := range text {
		total++
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	return float64(upper) / float64(total)
}
