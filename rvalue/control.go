package rvalue

import (
	"fmt"

	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

// Controlled is an r-value plus a control intersection: it resolves to
// Inner's value, but every operation it emits is additionally gated by
// Controls.
type Controlled[T any] struct {
	Inner    RValue[T]
	Controls qubit.QubitIntersection
}

// NewControlled builds a controlled r-value, merging with any existing
// outer controls on inner per the control-commutativity invariant.
func NewControlled[T any](inner RValue[T], controls qubit.QubitIntersection) RValue[T] {
	if controls.IsEmpty() {
		return inner
	}
	if c, ok := inner.(*Controlled[T]); ok {
		return &Controlled[T]{Inner: c.Inner, Controls: c.Controls.Merge(controls)}
	}
	return &Controlled[T]{Inner: inner, Controls: controls}
}

func (c *Controlled[T]) PermutationRegisters() []qureg.Qureg {
	return c.Inner.PermutationRegisters()
}
func (c *Controlled[T]) ExistingStorageLocation() (op.Location, bool) {
	return c.Inner.ExistingStorageLocation()
}
func (c *Controlled[T]) MakeStorageLocation(name string) op.Location {
	return c.Inner.MakeStorageLocation(name)
}
func (c *Controlled[T]) Resolve(store op.BitStore) T { return c.Inner.Resolve(store) }

func (c *Controlled[T]) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return c.Inner.InitStorageLocation(loc, controls.Merge(c.Controls))
}
func (c *Controlled[T]) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return c.Inner.DelStorageLocation(loc, controls.Merge(c.Controls))
}
func (c *Controlled[T]) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	return c.Inner.PhaseFlipIf(controls.Merge(c.Controls))
}

// ScaledInt is quint * const, used by PlusEqualTimesGate-style
// multiply-accumulate. It is a read-only derived value: like
// QuintBacked it has no independent storage of its own.
type ScaledInt struct {
	Quantum RValue[int]
	Const   int
}

func NewScaledInt(quantum RValue[int], constFactor int) *ScaledInt {
	return &ScaledInt{Quantum: quantum, Const: constFactor}
}

func (s *ScaledInt) PermutationRegisters() []qureg.Qureg { return s.Quantum.PermutationRegisters() }
func (s *ScaledInt) ExistingStorageLocation() (op.Location, bool) { return nil, false }
func (s *ScaledInt) MakeStorageLocation(name string) op.Location {
	return s.Quantum.MakeStorageLocation(name)
}
func (s *ScaledInt) Resolve(store op.BitStore) int { return s.Quantum.Resolve(store) * s.Const }
func (s *ScaledInt) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("scaled-int r-value has no direct storage binding; use PlusEqualTimesGate")
}
func (s *ScaledInt) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("scaled-int r-value has no direct storage binding; use PlusEqualTimesGate")
}
func (s *ScaledInt) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("phase_flip_if is only defined for bool-valued r-values")
}
