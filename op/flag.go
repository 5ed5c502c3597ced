package op

import (
	"fmt"

	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

// AllocQuregOperation registers a qureg's qubits as live. It carries no
// state-mutation effect of its own (the simulator inserts fresh zero or
// random bits) and can never be controlled.
type AllocQuregOperation struct {
	Reg    qureg.Qureg
	XBasis bool
}

func (a *AllocQuregOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}
func (a *AllocQuregOperation) MutateState(store BitStore, forward bool) error { return nil }
func (a *AllocQuregOperation) Inverse() (Operation, error) {
	return nil, fmt.Errorf("%w: AllocQuregOperation", ErrNotInvertible)
}
func (a *AllocQuregOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	if controls.IsEmpty() {
		return a, nil
	}
	return nil, fmt.Errorf("%w: AllocQuregOperation", ErrNotControllable)
}
func (a *AllocQuregOperation) Describe() string { return "alloc" }

// ReleaseQuregOperation deregisters a qureg's qubits. If dirty=false
// and the simulator enforces release-at-zero, every released qubit
// must read 0.
type ReleaseQuregOperation struct {
	Reg    qureg.Qureg
	XBasis bool
	Dirty  bool
}

func (r *ReleaseQuregOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}
func (r *ReleaseQuregOperation) MutateState(store BitStore, forward bool) error { return nil }
func (r *ReleaseQuregOperation) Inverse() (Operation, error) {
	return nil, fmt.Errorf("%w: ReleaseQuregOperation", ErrNotInvertible)
}
func (r *ReleaseQuregOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	if controls.IsEmpty() {
		return r, nil
	}
	return nil, fmt.Errorf("%w: ReleaseQuregOperation", ErrNotControllable)
}
func (r *ReleaseQuregOperation) Describe() string { return "release" }

// MeasureOperation destructively reads targets, interpreting the raw
// bit vector through Interpret; if Reset, targets are cleared to zero
// afterward. Raw/Result are populated by the simulator and consumed by
// the caller after the operation has been emitted.
type MeasureOperation struct {
	Targets   qureg.Qureg
	Interpret func(bits []bool) any
	Reset     bool

	Raw    []bool
	Result any
}

func (m *MeasureOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}
func (m *MeasureOperation) MutateState(store BitStore, forward bool) error { return nil }
func (m *MeasureOperation) Inverse() (Operation, error) {
	return nil, fmt.Errorf("%w: MeasureOperation", ErrNotInvertible)
}
func (m *MeasureOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(m, controls)
}
func (m *MeasureOperation) Describe() string { return "measure" }

// MeasureXForPhaseKickOperation simulates an X-basis measurement used
// for deferred phase fixup: the simulator resolves Result to a random
// or phase-fixup-biased bit and resets Target to 0.
type MeasureXForPhaseKickOperation struct {
	Target qubit.Qubit
	Result bool
}

func (m *MeasureXForPhaseKickOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}
func (m *MeasureXForPhaseKickOperation) MutateState(store BitStore, forward bool) error { return nil }
func (m *MeasureXForPhaseKickOperation) Inverse() (Operation, error) {
	return nil, fmt.Errorf("%w: MeasureXForPhaseKickOperation", ErrNotInvertible)
}
func (m *MeasureXForPhaseKickOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	return defaultControlledBy(m, controls)
}
func (m *MeasureXForPhaseKickOperation) Describe() string { return "measure_x_phase_kick" }
