package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Get returns a pointer to the component and true, or nil and false if
// entry does not currently hold ct. Donburi's own ComponentType.Get
// panics on a missing component; this wrapper is what lets systems treat
// a missing component as "skip this entity" instead of a crash —
// accessing a component of a destroyed or incomplete entity returns
// none, never an exception.
func Get[T any](entry *donburi.Entry, ct *donburi.ComponentType[T]) (*T, bool) {
	if entry == nil || !entry.Valid() || !entry.HasComponent(ct) {
		return nil, false
	}
	return ct.Get(entry), true
}

// ForEach visits every (entity, component) pair currently holding ct.
// fn must not add or remove components of type T on the entity it is
// visiting during this call; callers that need to destroy entities
// while iterating should collect them in a local slice and apply the
// destruction afterward — donburi forbids mutating the component set
// being iterated from inside the iteration.
func ForEach[T any](w donburi.World, ct *donburi.ComponentType[T], fn func(entry *donburi.Entry, data *T)) {
	query := donburi.NewQuery(filter.Contains(ct))
	query.Each(w, func(entry *donburi.Entry) {
		fn(entry, ct.Get(entry))
	})
}
