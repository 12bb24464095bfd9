// Package ecs wraps donburi.World with the thread-safety discipline the
// server's concurrency model requires: the registry is owned by one mutex,
// and every access from outside the game thread goes through WithLock so
// a caller can never hold the lock across a call into the I/O layer.
package ecs

import (
	"sync"

	"github.com/yohamta/donburi"
)

// Entity is a thin alias over donburi's entity id. It is deliberately an
// alias, not a distinct type, so component fields that reference other
// entities (BulletOwner, FormationFollower) can be read and written by
// both this package and internal/ecscomp without conversions.
type Entity = donburi.Entity

// Registry is the entity-component store for one game session. It is
// non-copyable in spirit: always pass *Registry.
type Registry struct {
	mu    sync.Mutex
	world donburi.World
}

// NewRegistry allocates a fresh, empty entity-component store.
func NewRegistry() *Registry {
	return &Registry{world: donburi.NewWorld()}
}

// WithLock runs fn with exclusive access to the underlying donburi.World.
// fn must not block on I/O: the registry lock is also the "registryMutex"
// of the server's lock-ordering rule (stateMutex before registryMutex),
// and holding it across a socket call would violate that rule.
func (r *Registry) WithLock(fn func(w donburi.World)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.world)
}

// Valid reports whether entity still exists. Safe to call without a lock
// held by the caller; it takes the lock itself.
func (r *Registry) Valid(entity Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Valid(entity)
}

// Destroy removes entity and every component it holds. Idempotent: a
// destroyed or unknown entity is a no-op rather than an error.
func (r *Registry) Destroy(entity Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.world.Valid(entity) {
		r.world.Remove(entity)
	}
}

// Count returns the number of live entities. Used by join-capacity checks
// and tests; not on any hot path that needs to avoid the lock.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Len()
}

// ID narrows an Entity to the uint32 the wire protocol carries. Donburi
// packs the entity id into the upper half of its 64-bit Entity (the lower
// half holds version bits), so this takes e.Id() rather than truncating
// the raw value; this is the single place that conversion happens so
// callers never sprinkle raw casts.
func ID(e Entity) uint32 {
	return uint32(e.Id())
}

// FromID converts a wire-format uint32 into an Entity value as-is. It
// does not rebuild donburi's id/version packing, so it is not the inverse
// of ID and its result is not a live entity handle.
func FromID(id uint32) Entity {
	return Entity(id)
}
