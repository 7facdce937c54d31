package classifier

import "time"

// wireVerdict is the JSON shape the model is instructed to emit.
type wireVerdict struct {
	IsFake         bool     `json:"isFake"`
	Confidence     int      `json:"confidence"`
	DetectedIssues []string `json:"detectedIssues"`
	PrimaryReason  string   `json:"primaryReason"`
	Category       string   `json:"category"`
}

const (
	// Submissions shorter than this are rejected without a remote call.
	minContentLength = 3

	// Prompt token budget for the submitted content. Anything longer is
	// truncated before the prompt is assembled.
	contentTokenBudget = 1024

	// Per-attempt deadline for the remote call. One retry on failure.
	defaultCallTimeout = 15 * time.Second
	retryDelay         = 500 * time.Millisecond
	maxAttempts        = 2

	shortContentReason  = "Review is too short or empty"
	shortContentDetails = "Feedback must contain meaningful content"
	shortContentIssue   = "Incomplete review"

	FAKE_REVIEW_INSTRUCTION string = `You are an advanced fake review detection system. Analyze the following feedback and detect if it contains ANY of these issues:

1. **Fake / AI-generated reviews** - Generic ChatGPT/AI-style language
2. **Spam** - Promotional/advertising content
3. **Abusive / toxic text** - Offensive, hateful, or inappropriate language
4. **Copy-paste reviews** - Generic template text
5. **Over-positive fake praise** - Unrealistic excessive enthusiasm
6. **Keyword stuffing** - Repeated words/phrases unnaturally
7. **Promotional ads** - Sales pitches, links, promotions
8. **Incomplete reviews** - Too vague or meaningless
9. **Suspicious patterns** - Bot-like repetitive structure
10. **Language mismatch** - Non-English or mixed languages inappropriately
11. **Invalid sentiment** - Rating completely contradicts text content
12. **Sarcasm / hidden insults** - Fake positivity hiding criticism

FEEDBACK TO ANALYZE:
Content: "%s"
Rating: %d/5

Respond in this EXACT JSON format (no markdown, just raw JSON):
{
  "isFake": true/false,
  "confidence": 0-100,
  "detectedIssues": ["issue1", "issue2"],
  "primaryReason": "brief explanation",
  "category": "clean/suspicious/fake"
}

Rules:
- If NO issues detected: isFake=false, category="clean", confidence=0, detectedIssues=[]
- If minor concerns: isFake=false, category="suspicious", confidence=30-60
- If clear violations: isFake=true, category="fake", confidence=70-100
- primaryReason should be user-friendly (what they did wrong)
- detectedIssues should list ALL categories that apply

Respond with ONLY the JSON, no other text.`
)
