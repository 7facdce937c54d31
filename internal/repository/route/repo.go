package route

import (
	"context"
	"fmt"

	"github.com/satyam682/TrustPlus/internal/database"
	ierr "github.com/satyam682/TrustPlus/internal/errors"
	"github.com/satyam682/TrustPlus/internal/model"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RouteRepository reads the global appId -> tenantId table. Entries are
// written only by the app repository's create transaction.
type RouteRepository struct {
	db database.Client
}

var _ IRepository = RouteRepository{}

func New(db database.Client) RouteRepository {
	return RouteRepository{
		db: db,
	}
}

func (r RouteRepository) Get(ctx context.Context, appID string) (*model.AppRoute, error) {

	docRef := r.db.Collection(routesNode).Doc(appID)
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ierr.NotFound
		}
		return nil, fmt.Errorf("get app route: %w, id: %s", err, appID)
	}

	if !docSnap.Exists() {
		return nil, ierr.NotFound
	}

	route := &model.AppRoute{}
	if err := docSnap.DataTo(route); err != nil {
		return nil, fmt.Errorf("get app route: %w, id: %s", err, appID)
	}
	return route, nil
}
