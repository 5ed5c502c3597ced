// Package qubit defines the Qubit value and the control-set
// (QubitIntersection) used throughout the emission pipeline.
package qubit

import (
	"sort"

	"github.com/coherent-ops/revq/handle"
)

// Qubit is a pair (handle, optional index). With no index it is a
// singleton; with an index it is one bit of an indexed family sharing
// that handle. Equality is structural over (handle, index).
type Qubit struct {
	H        handle.Handle
	Index    int
	Indexed  bool
}

// New returns a singleton qubit over a fresh handle named name.
func New(name string) Qubit {
	return Qubit{H: handle.New(name)}
}

// Indexed returns bit index i of an indexed qubit family sharing h.
func Indexed(h handle.Handle, i int) Qubit {
	return Qubit{H: h, Index: i, Indexed: true}
}

// Equal reports structural equality over (handle, index).
func (q Qubit) Equal(o Qubit) bool {
	return q.H.Equal(o.H) && q.Indexed == o.Indexed && q.Index == o.Index
}

func (q Qubit) String() string {
	if !q.Indexed {
		return q.H.Name()
	}
	return q.H.Name()
}

// QubitIntersection is a multiplicative AND of qubits used as a control
// set. Order is irrelevant and duplicates are elided; the empty
// intersection is the "always true" control.
type QubitIntersection struct {
	qubits []Qubit
}

// Empty is the always-true control (no qubits).
var Empty = QubitIntersection{}

// And builds a control set over the given qubits, deduplicating.
func And(qs ...Qubit) QubitIntersection {
	out := make([]Qubit, 0, len(qs))
	for _, q := range qs {
		dup := false
		for _, have := range out {
			if have.Equal(q) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, q)
		}
	}
	return QubitIntersection{qubits: out}
}

// Qubits returns the qubits forming this control set, in a stable
// (sorted-by-handle-name-then-index) order for deterministic iteration.
func (c QubitIntersection) Qubits() []Qubit {
	out := make([]Qubit, len(c.qubits))
	copy(out, c.qubits)
	sort.Slice(out, func(i, j int) bool {
		if out[i].H.Name() != out[j].H.Name() {
			return out[i].H.Name() < out[j].H.Name()
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// IsEmpty reports whether this is the always-true control.
func (c QubitIntersection) IsEmpty() bool { return len(c.qubits) == 0 }

// Merge ANDs two control sets together (monotone, commutative per the
// control-commutativity invariant).
func (c QubitIntersection) Merge(o QubitIntersection) QubitIntersection {
	return And(append(append([]Qubit{}, c.qubits...), o.qubits...)...)
}

// Len returns the number of distinct qubits in the control set.
func (c QubitIntersection) Len() int { return len(c.qubits) }
