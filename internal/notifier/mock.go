package notifier

import (
	"context"

	"github.com/rs/zerolog/log"
)

// MockNotifier logs alerts instead of sending them. Used when no email API
// key is configured.
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, to, subject, html string) error {
	log.Info().Msgf("[mock notifier] to=%s subject=%q", to, subject)
	return nil
}
