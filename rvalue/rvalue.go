// Package rvalue implements the abstract-value algebra: expressions of
// type bool or int that can be materialized into a location (an
// l-value) and that know how to emit their own binding/unbinding and
// conditional phase flip. Concrete types here satisfy op.RValueBinder
// structurally, so op.LetRValueOperation/DelRValueOperation can bind
// them without this package creating an import cycle back into op.
package rvalue

import (
	"fmt"

	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
)

// RValue is an abstract value of type T (bool or int) that can be
// materialized into a location.
type RValue[T any] interface {
	// PermutationRegisters returns the registers whose permutation
	// defines this value, for simulation bookkeeping.
	PermutationRegisters() []qureg.Qureg

	// ExistingStorageLocation returns the l-value this r-value already
	// wraps, if any.
	ExistingStorageLocation() (op.Location, bool)

	// MakeStorageLocation returns a fresh l-value template suitable
	// for holding this value.
	MakeStorageLocation(name string) op.Location

	// InitStorageLocation emits operations that, conditional on
	// controls, set loc to this value; loc is assumed zeroed.
	InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error)

	// DelStorageLocation is the reversible inverse of
	// InitStorageLocation under the same controls.
	DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error)

	// PhaseFlipIf emits a phase flip conditional on controls AND this
	// value being truthy.
	PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error)

	// Resolve reads the concrete value of T against a bit store.
	Resolve(store op.BitStore) T
}

// reverseInverted runs fwd's operations in reverse, each replaced by
// its own inverse — the default DelStorageLocation shared by most
// existing-storage-free r-values ("init wrapped in inversion").
func reverseInverted(fwd []op.Operation) ([]op.Operation, error) {
	out := make([]op.Operation, 0, len(fwd))
	for i := len(fwd) - 1; i >= 0; i-- {
		inv, err := fwd[i].Inverse()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// ConstBool is the constant-bool r-value variant.
type ConstBool struct{ V bool }

func NewConstBool(v bool) *ConstBool { return &ConstBool{V: v} }

func (c *ConstBool) PermutationRegisters() []qureg.Qureg              { return nil }
func (c *ConstBool) ExistingStorageLocation() (op.Location, bool)     { return nil, false }
func (c *ConstBool) MakeStorageLocation(name string) op.Location      { return qubit.New(name) }
func (c *ConstBool) Resolve(store op.BitStore) bool                  { return c.V }

func (c *ConstBool) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	if !c.V {
		return nil, nil
	}
	q := loc.(qubit.Qubit)
	toggled, err := op.NewToggle(qureg.NewRaw(q)).ControlledBy(controls)
	if err != nil {
		return nil, err
	}
	return []op.Operation{toggled}, nil
}

func (c *ConstBool) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	fwd, err := c.InitStorageLocation(loc, controls)
	if err != nil {
		return nil, err
	}
	return reverseInverted(fwd)
}

func (c *ConstBool) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	if !c.V {
		return nil, nil
	}
	flip, err := op.PhaseFlip.ControlledBy(controls)
	if err != nil {
		return nil, err
	}
	return []op.Operation{flip}, nil
}

// ConstInt is the constant-int r-value variant. Width fixes the number
// of bits materialized by MakeStorageLocation.
type ConstInt struct {
	V     int
	Width int
}

func NewConstInt(v, width int) *ConstInt { return &ConstInt{V: v, Width: width} }

func (c *ConstInt) PermutationRegisters() []qureg.Qureg          { return nil }
func (c *ConstInt) ExistingStorageLocation() (op.Location, bool) { return nil, false }
func (c *ConstInt) MakeStorageLocation(name string) op.Location {
	return quint.New(qureg.NewNamed(name, c.Width))
}
func (c *ConstInt) Resolve(store op.BitStore) int { return c.V }

func (c *ConstInt) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	q := loc.(quint.Quint)
	var toToggle []qubit.Qubit
	for i := 0; i < q.Len(); i++ {
		if c.V&(1<<uint(i)) != 0 {
			toToggle = append(toToggle, q.Bit(i))
		}
	}
	if len(toToggle) == 0 {
		return nil, nil
	}
	toggled, err := op.NewToggle(qureg.NewRaw(toToggle...)).ControlledBy(controls)
	if err != nil {
		return nil, err
	}
	return []op.Operation{toggled}, nil
}

func (c *ConstInt) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	fwd, err := c.InitStorageLocation(loc, controls)
	if err != nil {
		return nil, err
	}
	return reverseInverted(fwd)
}

func (c *ConstInt) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("phase_flip_if is only defined for bool-valued r-values")
}

// QubitBacked wraps an already-allocated qubit as a bool r-value. It is
// an existing-storage type: Init/Del are never called because Hold
// uses ExistingStorageLocation directly instead of materializing a copy.
type QubitBacked struct{ Q qubit.Qubit }

func NewQubitBacked(q qubit.Qubit) *QubitBacked { return &QubitBacked{Q: q} }

func (q *QubitBacked) PermutationRegisters() []qureg.Qureg {
	return []qureg.Qureg{qureg.NewRaw(q.Q)}
}
func (q *QubitBacked) ExistingStorageLocation() (op.Location, bool) { return q.Q, true }
func (q *QubitBacked) MakeStorageLocation(name string) op.Location  { return qubit.New(name) }
func (q *QubitBacked) Resolve(store op.BitStore) bool               { return store.ReadQubit(q.Q) }

func (q *QubitBacked) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("qubit-backed r-value already has storage")
}
func (q *QubitBacked) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("qubit-backed r-value already has storage")
}
func (q *QubitBacked) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	flip, err := op.PhaseFlip.ControlledBy(controls.Merge(qubit.And(q.Q)))
	if err != nil {
		return nil, err
	}
	return []op.Operation{flip}, nil
}

// QuintBacked wraps an already-allocated quint as an int r-value.
type QuintBacked struct{ Qt quint.Quint }

func NewQuintBacked(qt quint.Quint) *QuintBacked { return &QuintBacked{Qt: qt} }

func (q *QuintBacked) PermutationRegisters() []qureg.Qureg      { return []qureg.Qureg{q.Qt.Reg} }
func (q *QuintBacked) ExistingStorageLocation() (op.Location, bool) { return q.Qt, true }
func (q *QuintBacked) MakeStorageLocation(name string) op.Location {
	return quint.New(qureg.NewNamed(name, q.Qt.Len()))
}
func (q *QuintBacked) Resolve(store op.BitStore) int { return q.Qt.Resolve(store.ReadQubit) }

func (q *QuintBacked) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("quint-backed r-value already has storage")
}
func (q *QuintBacked) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("quint-backed r-value already has storage")
}
func (q *QuintBacked) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("phase_flip_if is only defined for bool-valued r-values")
}
