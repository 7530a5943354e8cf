// Package registry issues and tracks the opaque client identities handed
// out on handshake. Identifiers are 128-bit random values and are never
// reissued while the process lives.
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Registry struct {
	mu      sync.Mutex
	clients map[uuid.UUID]struct{}
}

func New() *Registry {
	return &Registry{clients: make(map[uuid.UUID]struct{})}
}

// Handshake allocates a fresh identifier. Safe for concurrent use; the
// re-roll loop mirrors the collision handling of random id allocation,
// though a v4 collision is effectively impossible.
func (r *Registry) Handshake() (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		id, err := uuid.NewRandom()
		if err != nil {
			return uuid.Nil, fmt.Errorf("allocate client id: %w", err)
		}
		if _, taken := r.clients[id]; taken {
			continue
		}
		r.clients[id] = struct{}{}
		return id, nil
	}
}

// IsKnown reports whether id was issued by this registry and is still live.
func (r *Registry) IsKnown(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.clients[id]
	return ok
}

// Release invalidates an identifier on disconnect. Released ids are not
// recycled; a later Handshake always mints a new value.
func (r *Registry) Release(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Len returns the number of live identifiers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
