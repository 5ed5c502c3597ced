// Package quint views a register as a little-endian non-negative
// integer. The named in-place operations that replace the host
// language's overloaded arithmetic operators are package functions in
// gate (XorAssignConst, AddAssign, LessThan, ...), not Quint methods.
package quint

import (
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

// Quint is a register interpreted as a little-endian unsigned integer:
// bit 0 is the least significant bit.
type Quint struct {
	Reg qureg.Qureg
}

// New wraps a register view as a Quint.
func New(reg qureg.Qureg) Quint { return Quint{Reg: reg} }

// Len returns the bit width.
func (q Quint) Len() int { return q.Reg.Len() }

// Bit returns bit i (0 = least significant) as a Qubit.
func (q Quint) Bit(i int) qubit.Qubit { return q.Reg.At(i) }

// Slice returns the sub-Quint over bits [start,stop).
func (q Quint) Slice(start, stop int) Quint {
	return Quint{Reg: qureg.Slice(q.Reg, start, stop)}
}

// Resolve reads the integer value of q against a bit-lookup function,
// used by the simulator and by test helpers.
func (q Quint) Resolve(read func(qubit.Qubit) bool) int {
	v := 0
	for i := 0; i < q.Len(); i++ {
		if read(q.Bit(i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Overwrite writes value v (masked to Len() bits) via a bit-setter
// function, used by the simulator's randomize/overwrite helpers.
func (q Quint) Overwrite(v int, write func(qubit.Qubit, bool)) {
	for i := 0; i < q.Len(); i++ {
		write(q.Bit(i), v&(1<<uint(i)) != 0)
	}
}
