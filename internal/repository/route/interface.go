package route

import (
	"context"

	"github.com/satyam682/TrustPlus/internal/model"
)

type IRepository interface {
	Get(ctx context.Context, appID string) (*model.AppRoute, error)
}
