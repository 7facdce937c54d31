package flaggedalert

import (
	"context"
	"fmt"

	"github.com/satyam682/TrustPlus/internal/eventpublisher"
	"github.com/satyam682/TrustPlus/internal/eventpublisher/event"
	"github.com/satyam682/TrustPlus/internal/notifier"
	feedbackRepository "github.com/satyam682/TrustPlus/internal/repository/feedback"
	tenantRepository "github.com/satyam682/TrustPlus/internal/repository/tenant"

	"github.com/rs/zerolog/log"
)

// Handler emails the owning tenant whenever one of their apps receives a
// flagged submission.
type Handler struct {
	flaggedPublisher      eventpublisher.Publisher
	tenantRepo            tenantRepository.IRepository
	notifier              notifier.Notifier
	flaggedSubscriptionCh event.EventChannel
}

func New(
	flaggedPublisher eventpublisher.Publisher,
	tenantRepo tenantRepository.IRepository,
	n notifier.Notifier) *Handler {

	return &Handler{
		flaggedPublisher:      flaggedPublisher,
		tenantRepo:            tenantRepo,
		notifier:              n,
		flaggedSubscriptionCh: make(event.EventChannel),
	}
}

func (h *Handler) subscribeToEvents() {
	h.flaggedPublisher.Subscribe(h.eventChannel())
}

func (h *Handler) unsubscribeFromEvents() {
	h.flaggedPublisher.Unsubscribe(h.eventChannel())
}

func (h *Handler) eventChannel() chan<- event.Event {
	return h.flaggedSubscriptionCh
}

func (h *Handler) EventHandler(ctx context.Context) error {

	h.subscribeToEvents()
	defer h.unsubscribeFromEvents()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-h.flaggedSubscriptionCh:
			if !ok {
				return nil
			}

			if e.Err != nil {
				log.Error().Err(e.Err).Msg("flagged alert handler: error reading events")
				return e.Err
			}

			flaggedEvent, ok := e.Message.(feedbackRepository.FlaggedEvent)
			if !ok {
				continue
			}

			go h.handle(ctx, flaggedEvent)
		}
	}
}

func (h *Handler) handle(ctx context.Context, e feedbackRepository.FlaggedEvent) error {

	if e.TenantID == "" {
		return nil
	}

	profile, err := h.tenantRepo.GetProfile(ctx, e.TenantID)
	if err != nil {
		log.Error().Err(err).Msgf("flagged alert handler: failed to load tenant profile %s", e.TenantID)
		return err
	}

	if profile.Email == "" {
		return nil
	}

	subject := fmt.Sprintf(alertSubject, e.Flagged.AppName)
	body := fmt.Sprintf(alertBody, e.Flagged.AppName, e.Flagged.DetectionReason, e.Flagged.Confidence)

	if err := h.notifier.Notify(ctx, profile.Email, subject, body); err != nil {
		log.Error().Err(err).Msgf("flagged alert handler: failed to notify tenant %s", e.TenantID)
		return err
	}

	log.Debug().Msgf("flagged alert sent - tenant %s, feedback %s", e.TenantID, e.Flagged.ID)
	return nil
}
