package app

import (
	"context"
	"fmt"
	"time"

	"github.com/satyam682/TrustPlus/internal/database"
	ierr "github.com/satyam682/TrustPlus/internal/errors"
	"github.com/satyam682/TrustPlus/internal/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type AppRepository struct {
	db database.Client
}

var _ IRepository = AppRepository{}

func New(db database.Client) AppRepository {
	return AppRepository{
		db: db,
	}
}

// Create writes the app document and its global route entry in one
// transaction. The route doc is keyed by app id, so the transactional read
// doubles as the global uniqueness check the public routing relies on.
func (r AppRepository) Create(ctx context.Context, tenantID string, data model.App) error {

	data.CreatedAt = time.Now().UTC()
	if data.Status == "" {
		data.Status = model.AppStatusActive
	}

	appRef := r.db.Collection(usersNode).Doc(tenantID).Collection(appsNode).Doc(data.ID)
	routeRef := r.db.Collection(routesNode).Doc(data.ID)

	err := r.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(routeRef)
		if err == nil {
			return ierr.AlreadyExists
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Set(appRef, data); err != nil {
			return err
		}
		return tx.Set(routeRef, model.AppRoute{
			AppID:     data.ID,
			TenantID:  tenantID,
			CreatedAt: data.CreatedAt,
		})
	})

	if err != nil {
		return fmt.Errorf("create app: %w, id: %s", err, data.ID)
	}
	return nil
}

func (r AppRepository) GetByID(ctx context.Context, tenantID, appID string) (*model.App, error) {

	docRef := r.db.Collection(usersNode).Doc(tenantID).Collection(appsNode).Doc(appID)
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ierr.NotFound
		}
		return nil, fmt.Errorf("get app: %w, id: %s", err, appID)
	}

	if !docSnap.Exists() {
		return nil, ierr.NotFound
	}

	app := &model.App{}
	if err := docSnap.DataTo(app); err != nil {
		return nil, fmt.Errorf("get app: %w, id: %s", err, appID)
	}
	return app, nil
}

func (r AppRepository) List(ctx context.Context, tenantID string) ([]model.App, error) {

	apps := make([]model.App, 0)
	collRef := r.db.Collection(usersNode).Doc(tenantID).Collection(appsNode)
	r.db.IterDocs(ctx, collRef, func(ds *firestore.DocumentSnapshot) {
		app := model.App{}
		if err := ds.DataTo(&app); err != nil {
			return
		}
		apps = append(apps, app)
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list apps: %w, tenant: %s", err, tenantID)
	}

	return apps, nil
}

// Delete removes the app document together with its route entry so the
// public link dies with the app.
func (r AppRepository) Delete(ctx context.Context, tenantID, appID string) error {

	appRef := r.db.Collection(usersNode).Doc(tenantID).Collection(appsNode).Doc(appID)
	if _, err := r.db.DeleteDoc(ctx, appRef); err != nil {
		return fmt.Errorf("delete app: %w, id: %s", err, appID)
	}

	routeRef := r.db.Collection(routesNode).Doc(appID)
	if _, err := r.db.DeleteDoc(ctx, routeRef); err != nil {
		return fmt.Errorf("delete app route: %w, id: %s", err, appID)
	}

	return nil
}
