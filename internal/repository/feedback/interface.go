package feedback

import (
	"context"

	"github.com/satyam682/TrustPlus/internal/model"
)

// FlaggedEvent carries one newly flagged record off the store listener,
// together with the id of the tenant whose partition it landed in.
type FlaggedEvent struct {
	TenantID string
	Flagged  model.FlaggedFeedback
	Err      error
}

type IRepository interface {
	Create(ctx context.Context, tenantID string, data model.Feedback) error
	CreateFlagged(ctx context.Context, tenantID string, data model.FlaggedFeedback) error
	List(ctx context.Context, tenantID string) ([]model.Feedback, error)
	ListFlagged(ctx context.Context, tenantID string) ([]model.FlaggedFeedback, error)
	NotifyOnFlaggedAdded(ctx context.Context) <-chan FlaggedEvent
}
