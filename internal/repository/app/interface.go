package app

import (
	"context"

	"github.com/satyam682/TrustPlus/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, tenantID string, data model.App) error
	GetByID(ctx context.Context, tenantID, appID string) (*model.App, error)
	List(ctx context.Context, tenantID string) ([]model.App, error)
	Delete(ctx context.Context, tenantID, appID string) error
}
