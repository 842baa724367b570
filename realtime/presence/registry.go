package presence

import (
	"sync"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
	"github.com/tobyt50/PPALink-sub000/realtime"
)

// Registry maps user identity to live connections. It is process-wide,
// ephemeral state: nothing is persisted and a restart starts empty. The
// connection gateway mutates it on connect/disconnect; the pipeline core
// only reads it.
type Registry struct {
	mu    sync.RWMutex
	conns map[kernel.UserID]map[realtime.Connection]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[kernel.UserID]map[realtime.Connection]struct{}),
	}
}

// Register adds a live connection for a user. A user may hold several
// concurrent connections (multiple tabs/devices).
func (r *Registry) Register(userID kernel.UserID, conn realtime.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		set = make(map[realtime.Connection]struct{})
		r.conns[userID] = set
	}
	set[conn] = struct{}{}
}

// Unregister removes a connection; the user entry is dropped once its last
// connection is gone.
func (r *Registry) Unregister(userID kernel.UserID, conn realtime.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

// Lookup returns the live connections of the requested users, in no
// particular order. Users with no live connection contribute nothing.
func (r *Registry) Lookup(userIDs []kernel.UserID) []realtime.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var handles []realtime.Connection
	for _, id := range userIDs {
		for conn := range r.conns[id] {
			handles = append(handles, conn)
		}
	}
	return handles
}

// Online reports whether the user has at least one live connection.
func (r *Registry) Online(userID kernel.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}
