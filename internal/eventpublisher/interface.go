package eventpublisher

import (
	"github.com/satyam682/TrustPlus/internal/eventpublisher/event"
)

type Publisher interface {
	Subscribe(event.EventWChannel)
	Unsubscribe(event.EventWChannel)
}
