package dashboard

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	ierr "github.com/satyam682/TrustPlus/internal/errors"
	insightsHandler "github.com/satyam682/TrustPlus/internal/handler/insights"
	"github.com/satyam682/TrustPlus/internal/middleware"
	"github.com/satyam682/TrustPlus/internal/model"
	appRepository "github.com/satyam682/TrustPlus/internal/repository/app"
	feedbackRepository "github.com/satyam682/TrustPlus/internal/repository/feedback"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var iconColors = []string{"bg-blue-600", "bg-green-600", "bg-purple-600", "bg-orange-500", "bg-pink-500"}

// Handler serves the authenticated tenant dashboard: app management,
// feedback reads, aggregate stats and AI insights. Every operation is
// scoped to the tenant id resolved by the auth middleware.
type Handler struct {
	appRepo      appRepository.IRepository
	feedbackRepo feedbackRepository.IRepository
	insights     *insightsHandler.Handler
}

func New(appRepo appRepository.IRepository, feedbackRepo feedbackRepository.IRepository, insights *insightsHandler.Handler) *Handler {
	return &Handler{
		appRepo:      appRepo,
		feedbackRepo: feedbackRepo,
		insights:     insights,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/apps", h.CreateApp)
	r.Get("/apps", h.ListApps)
	r.Delete("/apps/{appID}", h.DeleteApp)
	r.Get("/apps/{appID}/insights", h.AppInsights)
	r.Get("/feedback", h.ListFeedback)
	r.Get("/feedback/flagged", h.ListFlagged)
	r.Get("/stats", h.Stats)
}

type createAppRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
}

// --- POST /api/apps ---

func (h *Handler) CreateApp(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	var req createAppRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "app name is required"})
		return
	}
	platform := model.Platform(req.Platform)
	if !platform.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "please select a valid platform type"})
		return
	}

	app := model.App{
		ID:          "app_" + uuid.NewString(),
		Name:        req.Name,
		URL:         req.URL,
		Platform:    platform.Label(),
		IconBg:      iconColors[rand.Intn(len(iconColors))],
		Status:      model.AppStatusActive,
		Description: req.Description,
	}

	if err := h.appRepo.Create(r.Context(), tenantID, app); err != nil {
		if errors.Is(err, ierr.AlreadyExists) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "app id already in use"})
			return
		}
		log.Error().Err(err).Msgf("dashboard handler: failed to create app for tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create app"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"app": app})
}

// --- GET /api/apps ---

func (h *Handler) ListApps(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	apps, err := h.appRepo.List(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to list apps for tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load apps"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"apps": apps})
}

// --- DELETE /api/apps/{appID} ---

func (h *Handler) DeleteApp(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	appID := chi.URLParam(r, "appID")

	// Ownership check before delete; the route table must never be
	// mutated on behalf of a tenant that does not own the app.
	if _, err := h.appRepo.GetByID(r.Context(), tenantID, appID); err != nil {
		if errors.Is(err, ierr.NotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "app not found"})
			return
		}
		log.Error().Err(err).Msgf("dashboard handler: failed to load app %s", appID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete app"})
		return
	}

	if err := h.appRepo.Delete(r.Context(), tenantID, appID); err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to delete app %s", appID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete app"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "app deleted"})
}

// --- GET /api/feedback ---

func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	items, err := h.feedbackRepo.List(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to list feedback for tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load feedback"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"feedback": items})
}

// --- GET /api/feedback/flagged ---

func (h *Handler) ListFlagged(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	items, err := h.feedbackRepo.ListFlagged(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to list flagged feedback for tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load flagged feedback"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"flagged": items})
}

type statsResponse struct {
	TotalFeedback int     `json:"totalFeedback"`
	TotalFlagged  int     `json:"totalFlagged"`
	AverageRating float64 `json:"averageRating"`
	Positive      int     `json:"positive"`
	Neutral       int     `json:"neutral"`
	Negative      int     `json:"negative"`
}

// --- GET /api/stats ---

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	items, err := h.feedbackRepo.List(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to load stats for tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load stats"})
		return
	}

	flagged, err := h.feedbackRepo.ListFlagged(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to load flagged stats for tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load stats"})
		return
	}

	stats := statsResponse{
		TotalFeedback: len(items),
		TotalFlagged:  len(flagged),
	}

	ratingSum := 0
	for _, fb := range items {
		ratingSum += fb.Rating
		switch fb.Sentiment {
		case model.SentimentPositive:
			stats.Positive++
		case model.SentimentNegative:
			stats.Negative++
		default:
			stats.Neutral++
		}
	}
	if len(items) > 0 {
		stats.AverageRating = float64(ratingSum) / float64(len(items))
	}

	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/apps/{appID}/insights ---

func (h *Handler) AppInsights(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	appID := chi.URLParam(r, "appID")

	app, err := h.appRepo.GetByID(r.Context(), tenantID, appID)
	if err != nil {
		if errors.Is(err, ierr.NotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "app not found"})
			return
		}
		log.Error().Err(err).Msgf("dashboard handler: failed to load app %s", appID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load insights"})
		return
	}

	items, err := h.feedbackRepo.List(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Msgf("dashboard handler: failed to load feedback for insights, tenant %s", tenantID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load insights"})
		return
	}

	appFeedback := make([]model.Feedback, 0, len(items))
	for _, fb := range items {
		if fb.AppID == appID {
			appFeedback = append(appFeedback, fb)
		}
	}

	result := h.insights.Generate(r.Context(), app.Name, appFeedback)
	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": result})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
