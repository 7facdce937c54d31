package tenant

import (
	"context"

	"github.com/satyam682/TrustPlus/internal/model"
)

type IRepository interface {
	GetProfile(ctx context.Context, tenantID string) (*model.TenantProfile, error)
	SaveProfile(ctx context.Context, tenantID string, profile model.TenantProfile) error
	ListIDs(ctx context.Context) ([]string, error)
}
