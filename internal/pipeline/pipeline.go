package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satyam682/TrustPlus/internal/moderation"
	"github.com/satyam682/TrustPlus/internal/moderation/classifier"
	"github.com/satyam682/TrustPlus/internal/model"
	feedbackRepository "github.com/satyam682/TrustPlus/internal/repository/feedback"
	"github.com/satyam682/TrustPlus/internal/routing"
	"github.com/satyam682/TrustPlus/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Guard errors refuse a submission before any remote call or write happens.
var (
	ErrRatingRequired = errors.New("a star rating is required")
	// ErrUnmodifiedContent refuses resubmission of content that was already
	// flagged; the submitter has to edit before trying again.
	ErrUnmodifiedContent = errors.New("flagged content must be edited before resubmitting")
)

// ContentBlockedError is returned when the local filter reports severe
// content. The scan result travels with it so callers can show the matched
// terms.
type ContentBlockedError struct {
	Scan moderation.Result
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("content blocked by local filter: %s", e.Scan.Warning)
}

// Submission is the untrusted public input: free text, a star rating and an
// optional email. It exists only in memory until accepted or rejected.
type Submission struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	Email   string `json:"email,omitempty"`
}

type Outcome string

const (
	// OutcomeSubmitted: the record was screened clean and persisted.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeRejected: the classifier flagged the record; it went to the
	// flagged collection and the submitter may edit and retry.
	OutcomeRejected Outcome = "rejected"
)

type Result struct {
	Outcome  Outcome
	Verdict  classifier.Verdict
	Feedback *model.Feedback
	Flagged  *model.FlaggedFeedback
}

// Detector is satisfied by classifier.Detector.
type Detector interface {
	Classify(ctx context.Context, content string, rating int) classifier.Verdict
}

// Pipeline runs one submission through the layered screening and routes the
// outcome to the owning tenant's partition. Steps are strictly ordered: the
// local scan completes before the classifier is called, and the verdict is
// terminal before any write happens.
type Pipeline struct {
	resolver     routing.IResolver
	feedbackRepo feedbackRepository.IRepository
	detector     Detector
	rejections   *rejectionMemory
	now          func() time.Time
	newID        func() string
}

func New(resolver routing.IResolver, feedbackRepo feedbackRepository.IRepository, detector Detector) *Pipeline {
	return &Pipeline{
		resolver:     resolver,
		feedbackRepo: feedbackRepo,
		detector:     detector,
		rejections:   newRejectionMemory(rejectionMemoryCap),
		now:          func() time.Time { return time.Now().UTC() },
		newID:        func() string { return uuid.NewString() },
	}
}

// Check runs only the local filter. The public form calls it as the user
// types; the result is advisory except for severe findings, which Submit
// enforces again regardless.
func (p *Pipeline) Check(content string) moderation.Result {
	return moderation.Scan(content)
}

// Submit drives one submission to a terminal outcome. Exactly one
// persistence write happens per call that returns a Result: a feedback
// write on OutcomeSubmitted, a flagged write on OutcomeRejected.
func (p *Pipeline) Submit(ctx context.Context, appID string, sub Submission) (*Result, error) {

	if sub.Rating < 1 || sub.Rating > 5 {
		return nil, ErrRatingRequired
	}

	if scan := moderation.Scan(sub.Content); scan.Severity == moderation.SeveritySevere {
		return nil, &ContentBlockedError{Scan: scan}
	}

	contentKey := utils.Hash(appID + "\n" + sub.Content)
	if p.rejections.Has(contentKey) {
		return nil, ErrUnmodifiedContent
	}

	verdict := p.detector.Classify(ctx, sub.Content, sub.Rating)

	tenantID, app, err := p.resolver.ResolveApp(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("submit feedback: %w, app: %s", err, appID)
	}

	if verdict.IsFake {
		return p.reject(ctx, tenantID, app, sub, verdict, contentKey)
	}
	return p.accept(ctx, tenantID, app, sub, verdict)
}

func (p *Pipeline) accept(ctx context.Context, tenantID string, app *model.App, sub Submission, verdict classifier.Verdict) (*Result, error) {

	fb := p.newFeedback(app, sub)

	if err := p.feedbackRepo.Create(ctx, tenantID, fb); err != nil {
		// Surfaced as a generic retryable error; never pretend success.
		return nil, fmt.Errorf("submit feedback: %w, app: %s", err, app.ID)
	}

	return &Result{
		Outcome:  OutcomeSubmitted,
		Verdict:  verdict,
		Feedback: &fb,
	}, nil
}

func (p *Pipeline) reject(ctx context.Context, tenantID string, app *model.App, sub Submission, verdict classifier.Verdict, contentKey string) (*Result, error) {

	fb := p.newFeedback(app, sub)
	fb.Sentiment = model.SentimentNegative
	fb.Tags = []string{"Flagged", "AI-Detected"}
	fb.IsVerified = false

	flagged := model.FlaggedFeedback{
		Feedback:        fb,
		DetectionReason: verdict.PrimaryReason,
		DetectedIssues:  verdict.DetectedIssues,
		Confidence:      verdict.Confidence,
		Category:        verdict.Category,
	}

	if err := p.feedbackRepo.CreateFlagged(ctx, tenantID, flagged); err != nil {
		// The verdict is already terminal; losing the flagged copy must not
		// turn a rejection into an acceptance.
		log.Error().Err(err).Msgf("pipeline: failed to persist flagged feedback for app %s", app.ID)
	}

	p.rejections.Add(contentKey)

	return &Result{
		Outcome: OutcomeRejected,
		Verdict: verdict,
		Flagged: &flagged,
	}, nil
}

func (p *Pipeline) newFeedback(app *model.App, sub Submission) model.Feedback {
	now := p.now()
	return model.Feedback{
		ID:         p.newID(),
		AppID:      app.ID,
		AppName:    app.Name,
		User:       model.DisplayName(sub.Email),
		Email:      sub.Email,
		Content:    sub.Content,
		Rating:     sub.Rating,
		Timestamp:  model.NewTimestamp(now),
		Time:       "Just now",
		Sentiment:  model.SentimentFromRating(sub.Rating),
		Tags:       []string{"New"},
		IsVerified: true,
	}
}
