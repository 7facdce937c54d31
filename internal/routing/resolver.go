package routing

import (
	"context"
	"errors"
	"fmt"

	ierr "github.com/satyam682/TrustPlus/internal/errors"
	"github.com/satyam682/TrustPlus/internal/model"
	appRepository "github.com/satyam682/TrustPlus/internal/repository/app"
	routeRepository "github.com/satyam682/TrustPlus/internal/repository/route"
	tenantRepository "github.com/satyam682/TrustPlus/internal/repository/tenant"

	"github.com/rs/zerolog/log"
)

// IResolver locates the tenant that owns a public app id. The submitter
// never transmits tenant identity; the app id alone must route the write.
type IResolver interface {
	ResolveOwner(ctx context.Context, appID string) (string, error)
	ResolveApp(ctx context.Context, appID string) (string, *model.App, error)
}

type Resolver struct {
	routeRepo  routeRepository.IRepository
	tenantRepo tenantRepository.IRepository
	appRepo    appRepository.IRepository
}

var _ IResolver = Resolver{}

func New(routeRepo routeRepository.IRepository, tenantRepo tenantRepository.IRepository, appRepo appRepository.IRepository) Resolver {
	return Resolver{
		routeRepo:  routeRepo,
		tenantRepo: tenantRepo,
		appRepo:    appRepo,
	}
}

// ResolveOwner returns the owning tenant id, or errors.NotFound when no
// tenant owns the app. The route table is authoritative for apps created
// after it was introduced; older apps are found by scanning every tenant
// partition, which stays correct only while app ids are globally unique.
func (r Resolver) ResolveOwner(ctx context.Context, appID string) (string, error) {
	tenantID, _, err := r.resolve(ctx, appID, false)
	return tenantID, err
}

// ResolveApp resolves the owner and loads the app document in one pass.
// Used by the public form so that metadata load and feedback writes cannot
// disagree about ownership.
func (r Resolver) ResolveApp(ctx context.Context, appID string) (string, *model.App, error) {
	return r.resolve(ctx, appID, true)
}

func (r Resolver) resolve(ctx context.Context, appID string, loadApp bool) (string, *model.App, error) {

	if appID == "" {
		return "", nil, ierr.NotFound
	}

	route, err := r.routeRepo.Get(ctx, appID)
	if err == nil {
		if !loadApp {
			return route.TenantID, nil, nil
		}

		app, err := r.appRepo.GetByID(ctx, route.TenantID, appID)
		if err != nil {
			// A route without its app is a torn delete; treat as gone.
			return "", nil, fmt.Errorf("resolve app: %w, id: %s", err, appID)
		}
		return route.TenantID, app, nil
	}

	if !errors.Is(err, ierr.NotFound) {
		return "", nil, fmt.Errorf("resolve owner: %w, id: %s", err, appID)
	}

	return r.scan(ctx, appID, loadApp)
}

// scan probes every tenant partition for the app id. Linear in tenant
// count; kept only as a fallback for apps that predate the route table.
func (r Resolver) scan(ctx context.Context, appID string, loadApp bool) (string, *model.App, error) {

	tenantIDs, err := r.tenantRepo.ListIDs(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("resolve owner: %w, id: %s", err, appID)
	}

	for _, tenantID := range tenantIDs {
		app, err := r.appRepo.GetByID(ctx, tenantID, appID)
		if errors.Is(err, ierr.NotFound) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("resolve owner: %w, id: %s", err, appID)
		}

		log.Debug().Msgf("routing: resolved app %s via tenant scan", appID)
		if !loadApp {
			return tenantID, nil, nil
		}
		return tenantID, app, nil
	}

	return "", nil, ierr.NotFound
}
