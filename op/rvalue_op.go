package op

import "github.com/coherent-ops/revq/qubit"

// RValueBinder is the capability an r-value must provide for
// LetRValueOperation/DelRValueOperation to bind/unbind it into a
// location. Concrete r-value types (package rvalue) implement this
// structurally; op never imports rvalue, keeping the graph acyclic.
type RValueBinder interface {
	InitStorageLocation(loc Location, controls qubit.QubitIntersection) ([]Operation, error)
	DelStorageLocation(loc Location, controls qubit.QubitIntersection) ([]Operation, error)
}

// LetRValueOperation binds Value into Loc under Controls, assuming Loc
// starts at the zero element. Its inverse is DelRValueOperation.
type LetRValueOperation struct {
	Value RValueBinder
	Loc   Location
}

func (l *LetRValueOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return l.Value.InitStorageLocation(l.Loc, controls)
}
func (l *LetRValueOperation) MutateState(store BitStore, forward bool) error { return nil }
func (l *LetRValueOperation) Inverse() (Operation, error) {
	return &DelRValueOperation{Value: l.Value, Loc: l.Loc}, nil
}
func (l *LetRValueOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(l, controls)
}
func (l *LetRValueOperation) Describe() string { return "let_rvalue" }

// DelRValueOperation unbinds a value previously bound by
// LetRValueOperation from Loc under Controls. Resolved Open Question:
// Do routes through DelStorageLocation (not InitStorageLocation).
type DelRValueOperation struct {
	Value RValueBinder
	Loc   Location
}

func (d *DelRValueOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return d.Value.DelStorageLocation(d.Loc, controls)
}
func (d *DelRValueOperation) MutateState(store BitStore, forward bool) error { return nil }
func (d *DelRValueOperation) Inverse() (Operation, error) {
	return &LetRValueOperation{Value: d.Value, Loc: d.Loc}, nil
}
func (d *DelRValueOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(d, controls)
}
func (d *DelRValueOperation) Describe() string { return "del_rvalue" }
