// Package handle mints globally unique qubit-family identities.
package handle

import "sync/atomic"

var counter uint64

// Handle is a globally unique identity carrying a display-name hint.
// Equality is identity (the id), never the name: two handles sharing a
// name are still distinct.
type Handle struct {
	id   uint64
	name string
}

// New mints a fresh, never-reused Handle with the given display name hint.
func New(name string) Handle {
	id := atomic.AddUint64(&counter, 1)
	return Handle{id: id, name: name}
}

// Name returns the display-name hint this handle was created with.
func (h Handle) Name() string { return h.name }

// Equal reports whether two handles share the same identity.
func (h Handle) Equal(o Handle) bool { return h.id == o.id }

// String renders the handle for diagnostics; not part of its identity.
func (h Handle) String() string { return h.name }
