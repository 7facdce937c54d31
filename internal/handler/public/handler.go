package public

import (
	"encoding/json"
	"errors"
	"net/http"

	ierr "github.com/satyam682/TrustPlus/internal/errors"
	"github.com/satyam682/TrustPlus/internal/pipeline"
	"github.com/satyam682/TrustPlus/internal/routing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves the unauthenticated submission boundary: form metadata,
// the advisory content check and the submission itself. The app id in the
// URL is the only routing key; no tenant identity is ever accepted from
// the client.
type Handler struct {
	resolver routing.IResolver
	pipeline *pipeline.Pipeline
}

func New(resolver routing.IResolver, p *pipeline.Pipeline) *Handler {
	return &Handler{
		resolver: resolver,
		pipeline: p,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/apps/{appID}", h.GetApp)
	r.Post("/apps/{appID}/feedback", h.SubmitFeedback)
	r.Post("/check", h.CheckContent)
}

type appResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
}

// --- GET /public/apps/{appID} ---

func (h *Handler) GetApp(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "appID")

	_, app, err := h.resolver.ResolveApp(r.Context(), appID)
	if err != nil {
		if errors.Is(err, ierr.NotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "app not found"})
			return
		}
		log.Error().Err(err).Msgf("public handler: failed to resolve app %s", appID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, appResponse{
		ID:       app.ID,
		Name:     app.Name,
		Platform: app.Platform,
		Status:   string(app.Status),
	})
}

type checkRequest struct {
	Content string `json:"content"`
}

// --- POST /public/check ---

// CheckContent runs only the local filter. The form calls it as the user
// types; mild findings are advisory, severe findings disable the submit
// button. Submit enforces the severe case again server-side.
func (h *Handler) CheckContent(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	scan := h.pipeline.Check(req.Content)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hasIssue":     scan.HasIssue,
		"severity":     scan.Severity,
		"warning":      scan.Warning,
		"matchedTerms": scan.MatchedTerms,
	})
}

// --- POST /public/apps/{appID}/feedback ---

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "appID")

	var sub pipeline.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.pipeline.Submit(r.Context(), appID, sub)
	if err != nil {
		h.writeSubmitError(w, appID, err)
		return
	}

	if result.Outcome == pipeline.OutcomeRejected {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message":        "feedback flagged by content screening",
			"reason":         result.Verdict.PrimaryReason,
			"detectedIssues": result.Verdict.DetectedIssues,
			"confidence":     result.Verdict.Confidence,
			"category":       result.Verdict.Category,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "feedback submitted successfully",
		"feedback": result.Feedback,
	})
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, appID string, err error) {

	var blocked *pipeline.ContentBlockedError
	switch {
	case errors.Is(err, pipeline.ErrRatingRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a star rating between 1 and 5 is required"})

	case errors.As(err, &blocked):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":        blocked.Scan.Warning,
			"severity":     blocked.Scan.Severity,
			"matchedTerms": blocked.Scan.MatchedTerms,
		})

	case errors.Is(err, pipeline.ErrUnmodifiedContent):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "please edit your feedback before resubmitting"})

	case errors.Is(err, ierr.NotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "app not found"})

	default:
		// Store-level details stay in the logs; the submitter only gets
		// generic retry guidance and keeps their input.
		log.Error().Err(err).Msgf("public handler: failed to submit feedback for app %s", appID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save your feedback, please try again"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
