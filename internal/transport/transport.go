// Package transport defines the channel contract between the session core and
// the concrete network transports. A transport accepts connections, turns
// inbound traffic into Events on a shared channel and writes outbound payloads
// through per-connection handles.
package transport

// Mode selects the delivery guarantee for a single send.
type Mode int

const (
	// ReliableOrdered delivers the payload reliably and in order; failures
	// are reported to the caller.
	ReliableOrdered Mode = iota
	// Unreliable is fire-and-forget: the transport may drop the payload
	// under pressure and never reports an error.
	Unreliable
)

func (that Mode) String() string {
	if that == Unreliable {
		return "unreliable"
	}
	return "reliable-ordered"
}

type EventKind int

const (
	Connected EventKind = iota
	Disconnected
	MessageReceived
)

// Event is one connect, disconnect or inbound-message occurrence. All events
// from all transports are drained by a single consumer, so the session state
// they touch needs no further serialization.
type Event struct {
	Kind    EventKind
	Conn    Conn
	Payload []byte
	Mode    Mode
}

// Conn is an opaque transport handle for one connected client.
type Conn interface {
	Send(payload []byte, mode Mode) error
	Close() error
	RemoteAddr() string
}
