// Package registry maps opaque transport handles to small stable client IDs.
package registry

import (
	"sync/atomic"

	"github.com/playforge/gameroom-backend/internal/transport"
)

type connection struct {
	handle   transport.Conn
	username string
}

// Registry tracks the active connection set. IDs are unique among currently
// active connections only: after a disconnect the lowest free ID is handed to
// the next client. All methods are called from the single engine goroutine.
type Registry struct {
	byID     map[int]*connection
	byHandle map[transport.Conn]int

	// active mirrors len(byID) for readers outside the engine goroutine.
	active atomic.Int64
}

func New() *Registry {
	return &Registry{
		byID:     make(map[int]*connection),
		byHandle: make(map[transport.Conn]int),
	}
}

// Register assigns the smallest unused non-negative ID to the handle and
// records both mapping directions.
func (that *Registry) Register(handle transport.Conn) int {
	id := 0
	for {
		if _, taken := that.byID[id]; !taken {
			break
		}
		id++
	}

	that.byID[id] = &connection{handle: handle}
	that.byHandle[handle] = id
	that.active.Add(1)

	return id
}

// Unregister removes both mapping directions for id. Unknown IDs are a no-op.
func (that *Registry) Unregister(id int) {
	conn, ok := that.byID[id]
	if !ok {
		return
	}

	delete(that.byHandle, conn.handle)
	delete(that.byID, id)
	that.active.Add(-1)
}

// Resolve returns the client ID of a handle.
func (that *Registry) Resolve(handle transport.Conn) (int, bool) {
	id, ok := that.byHandle[handle]
	return id, ok
}

// Handle returns the transport handle of a client ID.
func (that *Registry) Handle(id int) (transport.Conn, bool) {
	conn, ok := that.byID[id]
	if !ok {
		return nil, false
	}

	return conn.handle, true
}

// SetUsername records the authenticated username for id.
func (that *Registry) SetUsername(id int, username string) {
	if conn, ok := that.byID[id]; ok {
		conn.username = username
	}
}

// Username returns the authenticated username for id, empty when the client
// has not logged in.
func (that *Registry) Username(id int) string {
	if conn, ok := that.byID[id]; ok {
		return conn.username
	}

	return ""
}

// Active returns the number of currently registered connections. Safe to
// call from any goroutine.
func (that *Registry) Active() int {
	return int(that.active.Load())
}
