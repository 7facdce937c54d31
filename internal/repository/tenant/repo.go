package tenant

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

type TenantRepository struct {
	db database.Client
}

var _ IRepository = TenantRepository{}

func New(db database.Client) TenantRepository {
	return TenantRepository{
		db: db,
	}
}

func (r TenantRepository) GetProfile(ctx context.Context, tenantID string) (*model.TenantProfile, error) {

	docRef := r.db.Collection(usersNode).Doc(tenantID).Collection(profileNode).Doc(profileDoc)
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ierr.NotFound
		}
		return nil, fmt.Errorf("get tenant profile: %w, id: %s", err, tenantID)
	}

	if !docSnap.Exists() {
		return nil, ierr.NotFound
	}

	profile := &model.TenantProfile{}
	if err := docSnap.DataTo(profile); err != nil {
		return nil, fmt.Errorf("get tenant profile: %w, id: %s", err, tenantID)
	}
	return profile, nil
}

func (r TenantRepository) SaveProfile(ctx context.Context, tenantID string, profile model.TenantProfile) error {

	profile.UpdatedAt = time.Now().UTC()

	// Write the parent doc alongside the profile. A doc that exists only
	// through its subcollections is invisible to the users enumeration.
	parentRef := r.db.Collection(usersNode).Doc(tenantID)
	batch := []database.DataBatch{
		{DocRef: parentRef, Data: map[string]interface{}{"uid": tenantID}},
		{DocRef: parentRef.Collection(profileNode).Doc(profileDoc), Data: profile},
	}

	if _, err := r.db.SetDocs(ctx, batch); err != nil {
		return fmt.Errorf("save tenant profile: %w, id: %s", err, tenantID)
	}

	return nil
}

// ListIDs enumerates every tenant partition. This backs the legacy routing
// scan and is linear in the number of tenants.
func (r TenantRepository) ListIDs(ctx context.Context) ([]string, error) {

	ids := make([]string, 0)
	r.db.IterDocs(ctx, r.db.Collection(usersNode), func(ds *firestore.DocumentSnapshot) {
		ids = append(ids, ds.Ref.ID)
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list tenant ids: %w", err)
	}

	return ids, nil
}
