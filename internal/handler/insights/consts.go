package insights

const (
	// Only the most recent feedback is summarized into the prompt.
	maxFeedbackInPrompt = 20
	maxInsights         = 3

	INSIGHTS_INSTRUCTION string = `Analyze the following user feedback for "%s" and provide 2-3 actionable insights.

Feedback data:
%s

Provide insights in this exact JSON format (no markdown, just raw JSON):
[
  {
    "type": "insight|attention|success",
    "title": "Brief title (max 5 words)",
    "description": "1-2 sentence description of the finding",
    "recommendation": "Specific actionable recommendation"
  }
]

Types:
- "insight" for opportunities or patterns
- "attention" for problems or concerns
- "success" for positive achievements

Respond with ONLY the JSON array, no other text.`
)
