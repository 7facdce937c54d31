package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/satyam682/TrustPlus/internal/gpt"
	"github.com/satyam682/TrustPlus/internal/model"
	"github.com/satyam682/TrustPlus/internal/utils"

	"github.com/rs/zerolog/log"
)

// Verdict is the structured outcome of screening one submission.
type Verdict struct {
	IsFake         bool                  `json:"isFake"`
	Confidence     int                   `json:"confidence"`
	DetectedIssues []string              `json:"detectedIssues"`
	PrimaryReason  string                `json:"primaryReason"`
	Category       model.VerdictCategory `json:"category"`
	Details        string                `json:"details"`
}

// Policy decides what Classify resolves to when the remote model cannot be
// reached or its answer cannot be parsed.
type Policy string

const (
	// FailOpen treats a broken classifier as a clean verdict so that a
	// degraded dependency never blocks genuine feedback.
	FailOpen Policy = "open"
	// FailClosed treats a broken classifier as a rejection.
	FailClosed Policy = "closed"
)

// TokenCounter reports the prompt token cost of a string. Satisfied by
// gpt/utils.Tokenizer.
type TokenCounter interface {
	CountTokens(s string) int
}

// Detector screens submissions against the remote model. Classify never
// returns an error; every failure mode resolves to the configured policy's
// fallback verdict.
type Detector struct {
	gptFactory  gpt.ClientFactory
	tokenizer   TokenCounter
	policy      Policy
	callTimeout time.Duration
}

type Option func(*Detector)

func WithPolicy(p Policy) Option {
	return func(d *Detector) {
		d.policy = p
	}
}

func WithCallTimeout(t time.Duration) Option {
	return func(d *Detector) {
		d.callTimeout = t
	}
}

func New(gptFactory gpt.ClientFactory, tokenizer TokenCounter, opts ...Option) *Detector {
	d := &Detector{
		gptFactory:  gptFactory,
		tokenizer:   tokenizer,
		policy:      FailOpen,
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Classify screens the submitted content. The short-content pre-check is
// the one case that fails closed regardless of policy: an empty submission
// carries no signal worth accepting.
func (d *Detector) Classify(ctx context.Context, content string, rating int) Verdict {

	if len(strings.TrimSpace(content)) < minContentLength {
		return Verdict{
			IsFake:         true,
			Confidence:     100,
			DetectedIssues: []string{shortContentIssue},
			PrimaryReason:  shortContentReason,
			Category:       model.CategoryFake,
			Details:        shortContentDetails,
		}
	}

	response, err := d.prompt(ctx, d.truncate(content), rating)
	if err != nil {
		log.Error().Err(err).Msg("classifier: remote call failed")
		return d.fallback("Unable to verify, accepted by default", "Detection system temporarily unavailable")
	}

	span, ok := extractJSON(response)
	if !ok {
		log.Error().Msg("classifier: no JSON object in model response")
		return d.fallback("Could not analyze, accepted by default", "Analysis inconclusive")
	}

	var wire wireVerdict
	if err := json.Unmarshal([]byte(span), &wire); err != nil {
		log.Error().Err(err).Msg("classifier: failed to parse model verdict")
		return d.fallback("Could not analyze, accepted by default", "Analysis inconclusive")
	}

	return verdictFromWire(wire)
}

func (d *Detector) prompt(ctx context.Context, content string, rating int) (string, error) {

	var response string

	retryHandler := utils.NewRetryHandler(d.callTimeout*maxAttempts, retryDelay, maxAttempts)
	err := retryHandler.Do(func() error {
		client, err := d.gptFactory.Client()
		if err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, d.callTimeout)
		defer cancel()

		client.Instruct(fmt.Sprintf(FAKE_REVIEW_INSTRUCTION, content, rating))
		response, err = client.Prompt(callCtx, "")
		return err
	})

	return response, err
}

// truncate caps the content at the prompt token budget so one oversized
// submission cannot blow the model's context window.
func (d *Detector) truncate(content string) string {
	for d.tokenizer.CountTokens(content) > contentTokenBudget {
		runes := []rune(content)
		content = string(runes[:len(runes)*9/10])
	}
	return content
}

func (d *Detector) fallback(reason, details string) Verdict {
	if d.policy == FailClosed {
		return Verdict{
			IsFake:         true,
			Confidence:     0,
			DetectedIssues: []string{},
			PrimaryReason:  "Content screening is unavailable, submission rejected",
			Category:       model.CategoryFake,
			Details:        details,
		}
	}

	return Verdict{
		IsFake:         false,
		Confidence:     0,
		DetectedIssues: []string{},
		PrimaryReason:  reason,
		Category:       model.CategoryClean,
		Details:        details,
	}
}

// extractJSON locates the first '{' ... last '}' span of the response. The
// model is told to answer with raw JSON but routinely wraps it in prose.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

func verdictFromWire(wire wireVerdict) Verdict {

	v := Verdict{
		IsFake:         wire.IsFake,
		Confidence:     wire.Confidence,
		DetectedIssues: wire.DetectedIssues,
		PrimaryReason:  wire.PrimaryReason,
		Category:       model.VerdictCategory(wire.Category),
	}

	if v.DetectedIssues == nil {
		v.DetectedIssues = []string{}
	}
	if v.PrimaryReason == "" {
		v.PrimaryReason = "No issues detected"
	}
	if v.Category == "" {
		v.Category = model.CategoryClean
	}

	if len(v.DetectedIssues) > 0 {
		v.Details = fmt.Sprintf("Detected: %s", strings.Join(v.DetectedIssues, ", "))
	} else {
		v.Details = "Review appears genuine"
	}

	return v
}
