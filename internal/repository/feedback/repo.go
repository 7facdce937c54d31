package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/satyam682/TrustPlus/internal/database"
	"github.com/satyam682/TrustPlus/internal/model"
	"github.com/satyam682/TrustPlus/internal/repository/helper"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

type FeedbackRepository struct {
	db database.Client
}

var _ IRepository = FeedbackRepository{}

func New(db database.Client) FeedbackRepository {
	return FeedbackRepository{
		db: db,
	}
}

// Create persists one accepted record. Each submission is a fresh document
// keyed by its own id, so no read-modify-write is involved and concurrent
// submissions to the same app never contend.
func (r FeedbackRepository) Create(ctx context.Context, tenantID string, data model.Feedback) error {

	docRef := r.db.Collection(usersNode).Doc(tenantID).Collection(feedbackNode).Doc(data.ID)
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("create feedback: %w, id: %s", err, data.ID)
	}
	return nil
}

// CreateFlagged persists one rejected record to the separate flagged
// collection. Flagged and clean records never share a collection.
func (r FeedbackRepository) CreateFlagged(ctx context.Context, tenantID string, data model.FlaggedFeedback) error {

	docRef := r.db.Collection(usersNode).Doc(tenantID).Collection(flaggedNode).Doc(data.ID)
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("create flagged feedback: %w, id: %s", err, data.ID)
	}
	return nil
}

func (r FeedbackRepository) List(ctx context.Context, tenantID string) ([]model.Feedback, error) {

	items := make([]model.Feedback, 0)
	collRef := r.db.Collection(usersNode).Doc(tenantID).Collection(feedbackNode)
	r.db.IterDocs(ctx, collRef, func(ds *firestore.DocumentSnapshot) {
		fb := model.Feedback{}
		if err := ds.DataTo(&fb); err != nil {
			return
		}
		items = append(items, fb)
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list feedback: %w, tenant: %s", err, tenantID)
	}

	return items, nil
}

func (r FeedbackRepository) ListFlagged(ctx context.Context, tenantID string) ([]model.FlaggedFeedback, error) {

	items := make([]model.FlaggedFeedback, 0)
	collRef := r.db.Collection(usersNode).Doc(tenantID).Collection(flaggedNode)
	r.db.IterDocs(ctx, collRef, func(ds *firestore.DocumentSnapshot) {
		fb := model.FlaggedFeedback{}
		if err := ds.DataTo(&fb); err != nil {
			return
		}
		items = append(items, fb)
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list flagged feedback: %w, tenant: %s", err, tenantID)
	}

	return items, nil
}

// NotifyOnFlaggedAdded streams newly flagged records across all tenants via
// a collection-group listener. The owning tenant id is recovered from the
// document path (users/{uid}/flaggedFeedback/{id}).
func (r FeedbackRepository) NotifyOnFlaggedAdded(ctx context.Context) <-chan FlaggedEvent {

	ch := make(chan FlaggedEvent)
	query := r.db.CollectionGroup(flaggedNode).Query

	go func() {
		defer close(ch)

		helper.NotifyOnChanges(ctx, r.db, query, nil, firestore.DocumentAdded, func(dc firestore.DocumentChange, err error) error {

			if err != nil && !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				log.Error().Err(err).Msg("feedback repo: failed to read flagged events")
				helper.NonblockingWrite(ctx, channelWriteTimeout, ch, FlaggedEvent{Err: err})
				return err
			}

			flagged := model.FlaggedFeedback{}
			if err := dc.Doc.DataTo(&flagged); err != nil {
				log.Error().Err(err).Msg("feedback repo: failed to convert doc to flagged feedback")
				return nil
			}

			tenantID := ""
			if parent := dc.Doc.Ref.Parent; parent != nil && parent.Parent != nil {
				tenantID = parent.Parent.ID
			}

			if err := helper.NonblockingWrite(ctx, channelWriteTimeout, ch, FlaggedEvent{TenantID: tenantID, Flagged: flagged}); err != nil {
				return err
			}
			return nil
		})
	}()

	return ch
}
