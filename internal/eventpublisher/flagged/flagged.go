package flagged

import (
	"context"
	"time"

	"github.com/satyam682/TrustPlus/internal/eventpublisher"
	"github.com/satyam682/TrustPlus/internal/eventpublisher/common"
	"github.com/satyam682/TrustPlus/internal/eventpublisher/event"
	feedbackRepo "github.com/satyam682/TrustPlus/internal/repository/feedback"

	"github.com/rs/zerolog/log"
)

const (
	writeTimeout          = time.Second
	writeFailureThreshold = 3
)

// FlaggedPublisher fans newly flagged feedback records out to subscribers.
// It sits on the store's flagged-collection listener, so alerts fire no
// matter which server instance performed the rejecting write.
type FlaggedPublisher interface {
	eventpublisher.Publisher
	Start(ctx context.Context) error
}

type flaggedPublisher struct {
	repo       feedbackRepo.IRepository
	submanager common.SubManager
	publisher  common.PublisherWithFailureThreshold
}

func NewPublisher(repo feedbackRepo.IRepository) FlaggedPublisher {
	return &flaggedPublisher{
		repo:       repo,
		submanager: *common.NewSubManager(),
		publisher:  *common.NewPublisherWithFailureThreshold(writeTimeout, writeFailureThreshold),
	}
}

func (p *flaggedPublisher) Subscribe(subscriber event.EventWChannel) {
	p.submanager.Subscribe(subscriber)
}

func (p *flaggedPublisher) Unsubscribe(subscriber event.EventWChannel) {
	p.submanager.Unsubscribe(subscriber)
}

func (p *flaggedPublisher) publish(ctx context.Context, flaggedEvent feedbackRepo.FlaggedEvent) {
	p.submanager.OnSubscribers(func(subscriber event.EventWChannel) {
		go func() {
			if err := p.publisher.Publish(ctx,
				subscriber,
				event.Event{Message: flaggedEvent, Err: flaggedEvent.Err}); err != nil {
				p.Unsubscribe(subscriber)
			}
		}()
	})
}

func (p *flaggedPublisher) Start(ctx context.Context) error {
	defer p.submanager.UnsubscribeAll()

	eventsCh := p.repo.NotifyOnFlaggedAdded(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Error().Err(ctx.Err()).Msg("FlaggedPublisher stopped")
			return ctx.Err()
		case e, ok := <-eventsCh:
			if !ok {
				return nil
			}
			log.Debug().Msgf("publish flagged feedback %s", e.Flagged.ID)
			p.publish(ctx, e)
		}
	}
}
