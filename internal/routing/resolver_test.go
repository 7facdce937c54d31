package routing

import (
	"context"
	"errors"
	"testing"

	ierr "github.com/satyam682/TrustPlus/internal/errors"
	"github.com/satyam682/TrustPlus/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRouteRepo struct {
	routes map[string]string // appID -> tenantID
	err    error
}

func (r *fakeRouteRepo) Get(ctx context.Context, appID string) (*model.AppRoute, error) {
	if r.err != nil {
		return nil, r.err
	}
	tenantID, ok := r.routes[appID]
	if !ok {
		return nil, ierr.NotFound
	}
	return &model.AppRoute{AppID: appID, TenantID: tenantID}, nil
}

type fakeTenantRepo struct {
	ids []string
	err error
}

func (r *fakeTenantRepo) GetProfile(ctx context.Context, tenantID string) (*model.TenantProfile, error) {
	return nil, ierr.NotFound
}

func (r *fakeTenantRepo) SaveProfile(ctx context.Context, tenantID string, profile model.TenantProfile) error {
	return nil
}

func (r *fakeTenantRepo) ListIDs(ctx context.Context) ([]string, error) {
	return r.ids, r.err
}

type fakeAppRepo struct {
	// tenantID -> appID -> app
	apps map[string]map[string]*model.App
}

func (r *fakeAppRepo) Create(ctx context.Context, tenantID string, data model.App) error {
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
	return nil, nil
}

func (r *fakeAppRepo) Delete(ctx context.Context, tenantID, appID string) error {
	return nil
}

func newTestResolver() (Resolver, *fakeRouteRepo, *fakeAppRepo) {
	routeRepo := &fakeRouteRepo{routes: map[string]string{"app-a": "tenant-a"}}
	tenantRepo := &fakeTenantRepo{ids: []string{"tenant-a", "tenant-b"}}
	appRepo := &fakeAppRepo{apps: map[string]map[string]*model.App{
		"tenant-a": {"app-a": {ID: "app-a", Name: "Alpha"}},
		"tenant-b": {"app-b": {ID: "app-b", Name: "Beta"}},
	}}
	return New(routeRepo, tenantRepo, appRepo), routeRepo, appRepo
}

func TestResolveOwnerViaRouteTable(t *testing.T) {
	r, _, _ := newTestResolver()

	tenantID, err := r.ResolveOwner(context.Background(), "app-a")

	require.NoError(t, err)
	assert.Equal(t, "tenant-a", tenantID)
}

func TestResolveOwnerViaTenantScan(t *testing.T) {
	// app-b predates the route table; only the scan can find it.
	r, _, _ := newTestResolver()

	tenantID, err := r.ResolveOwner(context.Background(), "app-b")

	require.NoError(t, err)
	assert.Equal(t, "tenant-b", tenantID)
}

func TestResolveAppLoadsDocument(t *testing.T) {
	r, _, _ := newTestResolver()

	tenantID, app, err := r.ResolveApp(context.Background(), "app-a")

	require.NoError(t, err)
	assert.Equal(t, "tenant-a", tenantID)
	require.NotNil(t, app)
	assert.Equal(t, "Alpha", app.Name)
}

func TestResolveSameAppAlwaysSameTenant(t *testing.T) {
	r, _, _ := newTestResolver()

	for i := 0; i < 3; i++ {
		tenantID, err := r.ResolveOwner(context.Background(), "app-b")
		require.NoError(t, err)
		assert.Equal(t, "tenant-b", tenantID)
	}
}

func TestResolveUnknownApp(t *testing.T) {
	r, _, _ := newTestResolver()

	_, err := r.ResolveOwner(context.Background(), "app-missing")
	assert.ErrorIs(t, err, ierr.NotFound)

	_, _, err = r.ResolveApp(context.Background(), "app-missing")
	assert.ErrorIs(t, err, ierr.NotFound)
}

func TestResolveEmptyAppID(t *testing.T) {
	r, _, _ := newTestResolver()

	_, err := r.ResolveOwner(context.Background(), "")
	assert.ErrorIs(t, err, ierr.NotFound)
}

func TestResolveRouteWithoutAppIsTorn(t *testing.T) {
	r, routeRepo, _ := newTestResolver()
	routeRepo.routes["app-gone"] = "tenant-a"

	_, _, err := r.ResolveApp(context.Background(), "app-gone")
	assert.ErrorIs(t, err, ierr.NotFound)
}

func TestResolveRouteRepoFailure(t *testing.T) {
	r, routeRepo, _ := newTestResolver()
	routeRepo.err = errors.New("deadline exceeded")

	_, err := r.ResolveOwner(context.Background(), "app-a")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ierr.NotFound)
}
