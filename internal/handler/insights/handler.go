package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gpt "github.com/satyam682/TrustPlus/internal/gpt"
	"github.com/satyam682/TrustPlus/internal/model"

	"github.com/rs/zerolog/log"
)

// Insight is one dashboard takeaway generated from recent feedback.
type Insight struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

type Handler struct {
	gptFactory gpt.ClientFactory
}

func New(gptFactory gpt.ClientFactory) *Handler {
	return &Handler{
		gptFactory: gptFactory,
	}
}

// Generate summarizes recent feedback into 2-3 insights. It degrades to a
// canned placeholder whenever the model is unreachable or unparsable; a
// broken insight generator must never break the dashboard.
func (h *Handler) Generate(ctx context.Context, appName string, feedbacks []model.Feedback) []Insight {

	if len(feedbacks) == 0 {
		return []Insight{{
			Type:           "insight",
			Title:          "No feedback yet",
			Description:    "Start collecting feedback to see AI-powered insights here.",
			Recommendation: "Share your feedback form link with users to get started.",
		}}
	}

	response, err := h.generateFromModel(ctx, appName, feedbacks)
	if err != nil {
		log.Error().Err(err).Msgf("insights handler: failed to generate insights for %s", appName)
		return fallbackInsights()
	}

	return response
}

func (h *Handler) generateFromModel(ctx context.Context, appName string, feedbacks []model.Feedback) ([]Insight, error) {

	gptClient, err := h.gptFactory.Client()
	if err != nil {
		return nil, err
	}

	gptClient.Instruct(fmt.Sprintf(INSIGHTS_INSTRUCTION, appName, feedbackSummary(feedbacks)))
	response, err := gptClient.Prompt(ctx, "")
	if err != nil {
		return nil, err
	}

	return responseToInsights(response)
}

func feedbackSummary(feedbacks []model.Feedback) string {
	if len(feedbacks) > maxFeedbackInPrompt {
		feedbacks = feedbacks[:maxFeedbackInPrompt]
	}

	sb := strings.Builder{}
	for i, fb := range feedbacks {
		sb.WriteString(fmt.Sprintf("%d. Rating: %d/5, Content: %q\n", i+1, fb.Rating, fb.Content))
	}
	return sb.String()
}

func responseToInsights(response string) ([]Insight, error) {

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in model response")
	}

	insights := []Insight{}
	if err := json.Unmarshal([]byte(response[start:end+1]), &insights); err != nil {
		return nil, err
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights, nil
}

func fallbackInsights() []Insight {
	return []Insight{{
		Type:           "insight",
		Title:          "Gathering feedback data",
		Description:    "Collect more feedback to unlock AI-powered insights about your app.",
		Recommendation: "Share feedback forms with users to gather more responses.",
	}}
}
