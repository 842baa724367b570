// Package realtime holds the live-connection primitives shared by the
// presence registry, the event publisher and the websocket gateway.
package realtime

// Connection is one live client connection. *websocket.Conn satisfies it
// directly; tests substitute in-memory fakes.
type Connection interface {
	WriteJSON(v any) error
	Close() error
}

// Envelope is the wire shape of every pushed event.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}
