// Package qureg defines read-only register views over qubits: named,
// raw, range, and padded.
package qureg

import (
	"github.com/coherent-ops/revq/handle"
	"github.com/coherent-ops/revq/qubit"
)

// Qureg is an ordered, read-only sequence of qubits.
type Qureg interface {
	Len() int
	At(i int) qubit.Qubit
	Qubits() []qubit.Qubit
}

// asSlice materializes any Qureg into a plain qubit slice.
func asSlice(q Qureg) []qubit.Qubit {
	out := make([]qubit.Qubit, q.Len())
	for i := range out {
		out[i] = q.At(i)
	}
	return out
}

// Named is (handle, length): Qubit(handle, 0..length).
type Named struct {
	H   handle.Handle
	N   int
}

// NewNamed allocates a fresh handle named name and returns a Named
// register view of length n over it.
func NewNamed(name string, n int) Named {
	return Named{H: handle.New(name), N: n}
}

func (r Named) Len() int               { return r.N }
func (r Named) At(i int) qubit.Qubit    { return qubit.Indexed(r.H, i) }
func (r Named) Qubits() []qubit.Qubit   { return asSlice(r) }

// Raw is an explicit ordered list of qubits.
type Raw struct {
	Q []qubit.Qubit
}

func NewRaw(qs ...qubit.Qubit) Raw { return Raw{Q: qs} }

func (r Raw) Len() int             { return len(r.Q) }
func (r Raw) At(i int) qubit.Qubit { return r.Q[i] }
func (r Raw) Qubits() []qubit.Qubit {
	out := make([]qubit.Qubit, len(r.Q))
	copy(out, r.Q)
	return out
}

// Range is a sub-slice of another register view given by (start, stop,
// step). Constructing a range that covers the whole base returns the
// base unchanged (structural identity) rather than a wrapper — the
// full-range-collapse invariant.
type rangeView struct {
	base         Qureg
	start, n     int
	step         int
}

// NewRange returns a view over base[start:stop:step]. If the slice
// covers the entire base (start==0, step==1, stop==base.Len()), base
// itself is returned unchanged.
func NewRange(base Qureg, start, stop, step int) Qureg {
	if step == 0 {
		step = 1
	}
	n := 0
	if step > 0 {
		for i := start; i < stop; i += step {
			n++
		}
	} else {
		for i := start; i > stop; i += step {
			n++
		}
	}
	if start == 0 && step == 1 && stop == base.Len() {
		return base
	}
	return rangeView{base: base, start: start, n: n, step: step}
}

func (r rangeView) Len() int { return r.n }
func (r rangeView) At(i int) qubit.Qubit {
	return r.base.At(r.start + i*r.step)
}
func (r rangeView) Qubits() []qubit.Qubit { return asSlice(r) }

// Slice is a convenience over NewRange for a contiguous, unit-step slice.
func Slice(base Qureg, start, stop int) Qureg {
	return NewRange(base, start, stop, 1)
}

// Concat joins register views end to end into a Raw.
func Concat(views ...Qureg) Raw {
	var out []qubit.Qubit
	for _, v := range views {
		out = append(out, asSlice(v)...)
	}
	return Raw{Q: out}
}
