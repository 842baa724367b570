package events

import (
	"github.com/tobyt50/PPALink-sub000/pkg/logx"
	"github.com/tobyt50/PPALink-sub000/realtime"
)

// Publisher pushes events to live connections, fire-and-forget: no
// acknowledgment, no retry, and no error ever reaches the business caller.
// An empty handle list is a no-op, so callers never branch on whether anyone
// is listening.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Emit delivers the event to every handle. A failing handle is logged and
// skipped; the connection gateway notices the dead socket on its own.
func (p *Publisher) Emit(conns []realtime.Connection, event string, payload any) {
	if len(conns) == 0 {
		return
	}

	envelope := realtime.Envelope{
		Event:   event,
		Payload: payload,
	}

	for _, conn := range conns {
		if err := conn.WriteJSON(envelope); err != nil {
			logx.Warnf("dropping %s push to dead connection: %v", event, err)
		}
	}
}
