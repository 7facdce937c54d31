package model

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentimentFromRating derives the stored sentiment from the star rating:
// 4 and above is positive, 2 and below is negative, 3 is neutral.
func SentimentFromRating(rating int) Sentiment {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// DisplayName derives the public display name from an optional email
// address: the local part when present, otherwise "Anonymous User".
func DisplayName(email string) string {
	if email == "" {
		return "Anonymous User"
	}
	return strings.SplitN(email, "@", 2)[0]
}

// Feedback is an accepted submission, owned by the tenant whose app it
// targets. Records are append-only; nothing mutates them after creation.
type Feedback struct {
	ID         string    `firestore:"id" json:"id"`
	AppID      string    `firestore:"appId" json:"appId"`
	AppName    string    `firestore:"appName" json:"appName"`
	User       string    `firestore:"user" json:"user"`
	Email      string    `firestore:"email,omitempty" json:"email,omitempty"`
	Content    string    `firestore:"content" json:"content"`
	Rating     int       `firestore:"rating" json:"rating"`
	Timestamp  string    `firestore:"timestamp" json:"timestamp"`
	Time       string    `firestore:"time" json:"time"`
	Sentiment  Sentiment `firestore:"sentiment" json:"sentiment"`
	Tags       []string  `firestore:"tags" json:"tags"`
	IsVerified bool      `firestore:"isVerified" json:"isVerified"`
}

type VerdictCategory string

const (
	CategoryClean      VerdictCategory = "clean"
	CategorySuspicious VerdictCategory = "suspicious"
	CategoryFake       VerdictCategory = "fake"
)

// FlaggedFeedback is a rejected submission. It lives in a collection of its
// own; flagged and clean records never commingle and a flagged record is
// never promoted automatically.
type FlaggedFeedback struct {
	Feedback

	DetectionReason string          `firestore:"detectionReason" json:"detectionReason"`
	DetectedIssues  []string        `firestore:"detectedIssues" json:"detectedIssues"`
	Confidence      int             `firestore:"confidence" json:"confidence"`
	Category        VerdictCategory `firestore:"category" json:"category"`
}

// NewTimestamp formats a creation instant the way the dashboard expects.
func NewTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
