package op

import (
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

// ToggleOperation is OP_TOGGLE: bitwise NOT over Targets, possibly
// controlled. It is fundamental: Do reports ErrFundamental and the
// simulator/renderer handle it directly (§4.2).
type ToggleOperation struct {
	Targets qureg.Qureg
}

func NewToggle(targets qureg.Qureg) *ToggleOperation { return &ToggleOperation{Targets: targets} }

func (t *ToggleOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}

func (t *ToggleOperation) MutateState(store BitStore, forward bool) error {
	for _, q := range t.Targets.Qubits() {
		store.WriteQubit(q, !store.ReadQubit(q))
	}
	return nil
}

func (t *ToggleOperation) Inverse() (Operation, error) { return t, nil } // self-inverse

func (t *ToggleOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(t, controls)
}

func (t *ToggleOperation) Describe() string { return "toggle" }

// PhaseFlipOperation is OP_PHASE_FLIP: apply a -1 phase conditional on
// the control intersection. It is purely a phase effect, invisible in
// the classical bit store.
type PhaseFlipOperation struct{}

var PhaseFlip = &PhaseFlipOperation{}

func (p *PhaseFlipOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}
func (p *PhaseFlipOperation) MutateState(store BitStore, forward bool) error { return nil }
func (p *PhaseFlipOperation) Inverse() (Operation, error)                   { return p, nil }
func (p *PhaseFlipOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(p, controls)
}
func (p *PhaseFlipOperation) Describe() string { return "phase_flip" }
