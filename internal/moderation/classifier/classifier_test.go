package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/satyam682/TrustPlus/internal/gpt"
	"github.com/satyam682/TrustPlus/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
}

func (c *fakeClient) Instruct(instruction string) {}

func (c *fakeClient) Prompt(ctx context.Context, prompt string) (string, error) {
	return c.response, c.err
}

type fakeFactory struct {
	client *fakeClient
}

func (f *fakeFactory) Client() (gpt.Client, error) {
	return f.client, nil
}

func (f *fakeFactory) ClientWithConfig(gpt.ClientConfig) (gpt.Client, error) {
	return f.client, nil
}

type fakeTokenizer struct{}

func (fakeTokenizer) CountTokens(s string) int {
	return len(s) / 4
}

func newTestDetector(response string, err error, opts ...Option) *Detector {
	factory := &fakeFactory{client: &fakeClient{response: response, err: err}}
	opts = append([]Option{WithCallTimeout(time.Millisecond * 50)}, opts...)
	return New(factory, fakeTokenizer{}, opts...)
}

func TestClassifyShortContent(t *testing.T) {
	d := newTestDetector(`{"isFake": false}`, nil)

	for _, content := range []string{"", "  ", "ok"} {
		v := d.Classify(context.Background(), content, 4)
		assert.True(t, v.IsFake)
		assert.Equal(t, 100, v.Confidence)
		assert.Equal(t, model.CategoryFake, v.Category)
		assert.Contains(t, v.DetectedIssues, shortContentIssue)
	}
}

func TestClassifyCleanVerdict(t *testing.T) {
	d := newTestDetector(`{"isFake": false, "confidence": 0, "detectedIssues": [], "primaryReason": "", "category": "clean"}`, nil)

	v := d.Classify(context.Background(), "The export feature saved me hours this week.", 5)

	assert.False(t, v.IsFake)
	assert.Equal(t, model.CategoryClean, v.Category)
	assert.Equal(t, "No issues detected", v.PrimaryReason)
	assert.Equal(t, "Review appears genuine", v.Details)
	require.NotNil(t, v.DetectedIssues)
	assert.Empty(t, v.DetectedIssues)
}

func TestClassifyFakeVerdict(t *testing.T) {
	d := newTestDetector(`{"isFake": true, "confidence": 90, "detectedIssues": ["Spam", "Promotional ads"], "primaryReason": "Contains promotional content", "category": "fake"}`, nil)

	v := d.Classify(context.Background(), "Visit my site for the best deals on watches", 5)

	assert.True(t, v.IsFake)
	assert.Equal(t, 90, v.Confidence)
	assert.Equal(t, model.CategoryFake, v.Category)
	assert.Equal(t, "Contains promotional content", v.PrimaryReason)
	assert.Equal(t, "Detected: Spam, Promotional ads", v.Details)
}

func TestClassifyExtractsJSONFromProse(t *testing.T) {
	response := "Sure! Here is my analysis:\n```json\n" +
		`{"isFake": true, "confidence": 85, "detectedIssues": ["Keyword stuffing"], "primaryReason": "Repeated phrases", "category": "fake"}` +
		"\n```\nLet me know if you need anything else."
	d := newTestDetector(response, nil)

	v := d.Classify(context.Background(), "best best best best app app app", 5)

	assert.True(t, v.IsFake)
	assert.Equal(t, 85, v.Confidence)
	assert.Contains(t, v.DetectedIssues, "Keyword stuffing")
}

func TestClassifyFailOpenOnError(t *testing.T) {
	d := newTestDetector("", errors.New("connection refused"))

	v := d.Classify(context.Background(), "A perfectly reasonable piece of feedback.", 3)

	assert.False(t, v.IsFake)
	assert.Equal(t, model.CategoryClean, v.Category)
	assert.Equal(t, "Unable to verify, accepted by default", v.PrimaryReason)
}

func TestClassifyFailOpenOnGarbageResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json at all", "I am not able to help with that."},
		{"malformed json", `{"isFake": tru`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(tt.response, nil)
			v := d.Classify(context.Background(), "A perfectly reasonable piece of feedback.", 3)
			assert.False(t, v.IsFake)
			assert.Equal(t, model.CategoryClean, v.Category)
		})
	}
}

func TestClassifyFailClosedPolicy(t *testing.T) {
	d := newTestDetector("", errors.New("connection refused"), WithPolicy(FailClosed))

	v := d.Classify(context.Background(), "A perfectly reasonable piece of feedback.", 3)

	assert.True(t, v.IsFake)
	assert.Equal(t, model.CategoryFake, v.Category)
	assert.Equal(t, "Content screening is unavailable, submission rejected", v.PrimaryReason)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"wrapped in prose", `answer: {"a":1} done`, `{"a":1}`, true},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"no object", "nothing here", "", false},
		{"reversed braces", "} {", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncateCapsTokenBudget(t *testing.T) {
	d := New(&fakeFactory{client: &fakeClient{}}, fakeTokenizer{})

	long := make([]byte, contentTokenBudget*8)
	for i := range long {
		long[i] = 'a'
	}

	got := d.truncate(string(long))
	assert.LessOrEqual(t, fakeTokenizer{}.CountTokens(got), contentTokenBudget)
	assert.NotEmpty(t, got)
}
