// Package op defines the operation taxonomy: the indivisible units of
// the emission stream and the structural combinators (control,
// inversion, scoped alloc/release, let/del of r-values) that compose
// them.
package op

import (
	"fmt"

	"github.com/coherent-ops/revq/qubit"
)

// ErrFundamental is returned by Do on a fundamental operation (toggle,
// phase flip) that sinks must special-case rather than decompose.
var ErrFundamental = fmt.Errorf("fundamental operation has no decomposition")

// ErrNotControllable is returned by ControlledBy on operations that may
// never be controlled (allocation and release).
var ErrNotControllable = fmt.Errorf("operation cannot be controlled")

// ErrNotInvertible is returned by Inverse on operations with no defined
// inverse (e.g. destructive measurement).
var ErrNotInvertible = fmt.Errorf("operation has no inverse")

// BitStore is the minimal classical bit-store capability a gate's
// emulation needs. sim.Sim implements it; op and gate never import sim
// directly, which keeps the dependency graph acyclic.
type BitStore interface {
	ReadQubit(q qubit.Qubit) bool
	WriteQubit(q qubit.Qubit, v bool)
	RandomBit() bool
}

// Location is an l-value an operation or r-value reads or writes:
// typically a qubit.Qubit, a qureg.Qureg, or a quint.Quint. It carries
// no behavior of its own; concrete operations type-assert it to what
// they expect.
type Location any

// Operation is the indivisible unit in the emission stream.
type Operation interface {
	// Do lowers the operation to terminal gates under the given
	// control intersection, returning the replacement operations.
	// Fundamental operations return ErrFundamental.
	Do(controls qubit.QubitIntersection) ([]Operation, error)

	// MutateState emulates the operation's effect on classical bits
	// directly (bypassing decomposition); forward=false undoes it.
	MutateState(store BitStore, forward bool) error

	// Inverse returns the reversed operation.
	Inverse() (Operation, error)

	// ControlledBy returns a controlled version of the operation.
	// Empty controls return the operation unchanged.
	ControlledBy(controls qubit.QubitIntersection) (Operation, error)

	// Describe renders a short human-readable description.
	Describe() string
}

// defaultControlledBy implements the standard control-wrapping rule
// shared by every non-flag operation: empty controls are a no-op,
// non-empty controls wrap into a ControlledOperation, merging with any
// existing outer control.
func defaultControlledBy(self Operation, controls qubit.QubitIntersection) (Operation, error) {
	if controls.IsEmpty() {
		return self, nil
	}
	if co, ok := self.(*ControlledOperation); ok {
		return &ControlledOperation{Inner: co.Inner, Controls: co.Controls.Merge(controls)}, nil
	}
	return &ControlledOperation{Inner: self, Controls: controls}, nil
}

// defaultInverse implements the standard inversion-wrapping rule:
// double-wrap collapses, otherwise wrap into InverseOperation.
func defaultInverse(self Operation) (Operation, error) {
	if iv, ok := self.(*InverseOperation); ok {
		return iv.Inner, nil
	}
	return &InverseOperation{Inner: self}, nil
}

// WrapControlled exposes the standard control-wrapping rule to other
// packages (e.g. gate) that define their own Operation implementations.
func WrapControlled(self Operation, controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(self, controls)
}

// WrapInverse exposes the standard inversion-wrapping rule to other
// packages that define their own Operation implementations.
func WrapInverse(self Operation) (Operation, error) {
	return defaultInverse(self)
}

// ControlledOperation wraps inner under an additional control
// intersection. Nested ControlledOperations merge rather than nest.
type ControlledOperation struct {
	Inner    Operation
	Controls qubit.QubitIntersection
}

func (c *ControlledOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return c.Inner.Do(controls.Merge(c.Controls))
}

func (c *ControlledOperation) MutateState(store BitStore, forward bool) error {
	allTrue := true
	for _, q := range c.Controls.Qubits() {
		if !store.ReadQubit(q) {
			allTrue = false
			break
		}
	}
	if !allTrue {
		return nil
	}
	return c.Inner.MutateState(store, forward)
}

func (c *ControlledOperation) Inverse() (Operation, error) {
	inner, err := c.Inner.Inverse()
	if err != nil {
		return nil, err
	}
	return &ControlledOperation{Inner: inner, Controls: c.Controls}, nil
}

func (c *ControlledOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	if controls.IsEmpty() {
		return c, nil
	}
	return &ControlledOperation{Inner: c.Inner, Controls: c.Controls.Merge(controls)}, nil
}

func (c *ControlledOperation) Describe() string {
	return fmt.Sprintf("%s controlled_by %v", c.Inner.Describe(), c.Controls.Qubits())
}

// InverseOperation wraps inner as its time-reversed form. Double-wrap
// collapses back to inner (the involution invariant).
type InverseOperation struct {
	Inner Operation
}

func (iv *InverseOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	forward, err := iv.Inner.Do(controls)
	if err != nil {
		return nil, err
	}
	out := make([]Operation, 0, len(forward))
	for i := len(forward) - 1; i >= 0; i-- {
		rev, err := forward[i].Inverse()
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, nil
}

func (iv *InverseOperation) MutateState(store BitStore, forward bool) error {
	return iv.Inner.MutateState(store, !forward)
}

func (iv *InverseOperation) Inverse() (Operation, error) { return iv.Inner, nil }

func (iv *InverseOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	if controls.IsEmpty() {
		return iv, nil
	}
	inner, err := defaultControlledBy(iv.Inner, controls)
	if err != nil {
		return nil, err
	}
	return &InverseOperation{Inner: inner}, nil
}

func (iv *InverseOperation) Describe() string { return "inverse(" + iv.Inner.Describe() + ")" }
