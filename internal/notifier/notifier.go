package notifier

import "context"

// Notifier delivers an alert to a tenant. The abstraction allows swapping
// the email sender for a no-op in dev and in tests without refactoring.
type Notifier interface {
	Notify(ctx context.Context, to, subject, html string) error
}
