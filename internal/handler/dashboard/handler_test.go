package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ierr "github.com/satyam682/TrustPlus/internal/errors"
	"github.com/satyam682/TrustPlus/internal/gpt"
	insightsHandler "github.com/satyam682/TrustPlus/internal/handler/insights"
	"github.com/satyam682/TrustPlus/internal/middleware"
	"github.com/satyam682/TrustPlus/internal/model"
	feedbackRepository "github.com/satyam682/TrustPlus/internal/repository/feedback"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppRepo struct {
	apps map[string]map[string]*model.App // tenantID -> appID -> app
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: map[string]map[string]*model.App{}}
}

func (r *fakeAppRepo) Create(ctx context.Context, tenantID string, data model.App) error {
	if r.apps[tenantID] == nil {
		r.apps[tenantID] = map[string]*model.App{}
	}
	if _, ok := r.apps[tenantID][data.ID]; ok {
		return ierr.AlreadyExists
	}
	r.apps[tenantID][data.ID] = &data
	return nil
}

func (r *fakeAppRepo) GetByID(ctx context.Context, tenantID, appID string) (*model.App, error) {
	app, ok := r.apps[tenantID][appID]
	if !ok {
		return nil, ierr.NotFound
	}
	return app, nil
}

func (r *fakeAppRepo) List(ctx context.Context, tenantID string) ([]model.App, error) {
	out := []model.App{}
	for _, app := range r.apps[tenantID] {
		out = append(out, *app)
	}
	return out, nil
}

func (r *fakeAppRepo) Delete(ctx context.Context, tenantID, appID string) error {
	delete(r.apps[tenantID], appID)
	return nil
}

type fakeFeedbackRepo struct {
	feedback map[string][]model.Feedback
	flagged  map[string][]model.FlaggedFeedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{
		feedback: map[string][]model.Feedback{},
		flagged:  map[string][]model.FlaggedFeedback{},
	}
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, tenantID string, data model.Feedback) error {
	r.feedback[tenantID] = append(r.feedback[tenantID], data)
	return nil
}

func (r *fakeFeedbackRepo) CreateFlagged(ctx context.Context, tenantID string, data model.FlaggedFeedback) error {
	r.flagged[tenantID] = append(r.flagged[tenantID], data)
	return nil
}

func (r *fakeFeedbackRepo) List(ctx context.Context, tenantID string) ([]model.Feedback, error) {
	return r.feedback[tenantID], nil
}

func (r *fakeFeedbackRepo) ListFlagged(ctx context.Context, tenantID string) ([]model.FlaggedFeedback, error) {
	return r.flagged[tenantID], nil
}

func (r *fakeFeedbackRepo) NotifyOnFlaggedAdded(ctx context.Context) <-chan feedbackRepository.FlaggedEvent {
	return nil
}

type fakeGptClient struct {
	response string
}

func (c *fakeGptClient) Instruct(instruction string) {}

func (c *fakeGptClient) Prompt(ctx context.Context, prompt string) (string, error) {
	return c.response, nil
}

type fakeGptFactory struct {
	client *fakeGptClient
}

func (f *fakeGptFactory) Client() (gpt.Client, error) {
	return f.client, nil
}

func (f *fakeGptFactory) ClientWithConfig(gpt.ClientConfig) (gpt.Client, error) {
	return f.client, nil
}

func newTestRouter(appRepo *fakeAppRepo, feedbackRepo *fakeFeedbackRepo) *chi.Mux {
	h := New(appRepo, feedbackRepo, insightsHandler.New(&fakeGptFactory{client: &fakeGptClient{
		response: `[{"type":"insight","title":"Steady signal"}]`,
	}}))

	r := chi.NewRouter()
	r.Route("/api", h.Routes)
	return r
}

func doAs(t *testing.T, router http.Handler, tenantID, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithTenantID(req.Context(), tenantID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestCreateApp(t *testing.T) {
	appRepo := newFakeAppRepo()
	router := newTestRouter(appRepo, newFakeFeedbackRepo())

	rec, body := doAs(t, router, "tenant-1", http.MethodPost, "/api/apps",
		`{"name": "My Web App", "url": "https://example.com", "platform": "web"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	created := body["app"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(created["id"].(string), "app_"))
	assert.Equal(t, "Web App", created["platform"])
	assert.Equal(t, "active", created["status"])
	assert.Len(t, appRepo.apps["tenant-1"], 1)
}

func TestCreateAppValidation(t *testing.T) {
	router := newTestRouter(newFakeAppRepo(), newFakeFeedbackRepo())

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"platform": "web"}`},
		{"bad platform", `{"name": "X", "platform": "toaster"}`},
		{"bad body", `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doAs(t, router, "tenant-1", http.MethodPost, "/api/apps", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListAppsScopedToTenant(t *testing.T) {
	appRepo := newFakeAppRepo()
	require.NoError(t, appRepo.Create(context.Background(), "tenant-1", model.App{ID: "app-1", Name: "Mine"}))
	require.NoError(t, appRepo.Create(context.Background(), "tenant-2", model.App{ID: "app-2", Name: "Theirs"}))
	router := newTestRouter(appRepo, newFakeFeedbackRepo())

	_, body := doAs(t, router, "tenant-1", http.MethodGet, "/api/apps", "")

	apps := body["apps"].([]interface{})
	require.Len(t, apps, 1)
	assert.Equal(t, "Mine", apps[0].(map[string]interface{})["name"])
}

func TestDeleteAppOwnershipCheck(t *testing.T) {
	appRepo := newFakeAppRepo()
	require.NoError(t, appRepo.Create(context.Background(), "tenant-2", model.App{ID: "app-2", Name: "Theirs"}))
	router := newTestRouter(appRepo, newFakeFeedbackRepo())

	rec, _ := doAs(t, router, "tenant-1", http.MethodDelete, "/api/apps/app-2", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, appRepo.apps["tenant-2"], 1, "another tenant's app must survive")
}

func TestDeleteApp(t *testing.T) {
	appRepo := newFakeAppRepo()
	require.NoError(t, appRepo.Create(context.Background(), "tenant-1", model.App{ID: "app-1", Name: "Mine"}))
	router := newTestRouter(appRepo, newFakeFeedbackRepo())

	rec, _ := doAs(t, router, "tenant-1", http.MethodDelete, "/api/apps/app-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, appRepo.apps["tenant-1"])
}

func TestListFlaggedSeparateFromFeedback(t *testing.T) {
	feedbackRepo := newFakeFeedbackRepo()
	require.NoError(t, feedbackRepo.Create(context.Background(), "tenant-1", model.Feedback{ID: "f1", Content: "nice"}))
	require.NoError(t, feedbackRepo.CreateFlagged(context.Background(), "tenant-1", model.FlaggedFeedback{
		Feedback: model.Feedback{ID: "f2", Content: "spam"},
		Category: model.CategoryFake,
	}))
	router := newTestRouter(newFakeAppRepo(), feedbackRepo)

	_, body := doAs(t, router, "tenant-1", http.MethodGet, "/api/feedback", "")
	require.Len(t, body["feedback"].([]interface{}), 1)

	_, body = doAs(t, router, "tenant-1", http.MethodGet, "/api/feedback/flagged", "")
	require.Len(t, body["flagged"].([]interface{}), 1)
}

func TestStats(t *testing.T) {
	feedbackRepo := newFakeFeedbackRepo()
	ctx := context.Background()
	require.NoError(t, feedbackRepo.Create(ctx, "tenant-1", model.Feedback{Rating: 5, Sentiment: model.SentimentPositive}))
	require.NoError(t, feedbackRepo.Create(ctx, "tenant-1", model.Feedback{Rating: 3, Sentiment: model.SentimentNeutral}))
	require.NoError(t, feedbackRepo.Create(ctx, "tenant-1", model.Feedback{Rating: 1, Sentiment: model.SentimentNegative}))
	require.NoError(t, feedbackRepo.CreateFlagged(ctx, "tenant-1", model.FlaggedFeedback{}))
	router := newTestRouter(newFakeAppRepo(), feedbackRepo)

	rec, body := doAs(t, router, "tenant-1", http.MethodGet, "/api/stats", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["totalFeedback"])
	assert.Equal(t, float64(1), body["totalFlagged"])
	assert.Equal(t, float64(3), body["averageRating"])
	assert.Equal(t, float64(1), body["positive"])
	assert.Equal(t, float64(1), body["neutral"])
	assert.Equal(t, float64(1), body["negative"])
}

func TestAppInsights(t *testing.T) {
	appRepo := newFakeAppRepo()
	require.NoError(t, appRepo.Create(context.Background(), "tenant-1", model.App{ID: "app-1", Name: "Mine"}))
	feedbackRepo := newFakeFeedbackRepo()
	require.NoError(t, feedbackRepo.Create(context.Background(), "tenant-1", model.Feedback{AppID: "app-1", Rating: 4, Content: "solid"}))
	router := newTestRouter(appRepo, feedbackRepo)

	rec, body := doAs(t, router, "tenant-1", http.MethodGet, "/api/apps/app-1/insights", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	insights := body["insights"].([]interface{})
	require.Len(t, insights, 1)
	assert.Equal(t, "Steady signal", insights[0].(map[string]interface{})["title"])
}

func TestAppInsightsUnknownApp(t *testing.T) {
	router := newTestRouter(newFakeAppRepo(), newFakeFeedbackRepo())

	rec, _ := doAs(t, router, "tenant-1", http.MethodGet, "/api/apps/nope/insights", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
