package diagram

import (
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// DrawLens records every toggle, phase flip, and measurement that
// passes through it into a DAG, then forwards the operation unchanged
// — it never consumes the stream, so a terminal sim.Sim beneath it
// still runs the program (SPEC_FULL.md's rendering lens, grounded on
// the original LogCirqCircuit's dispatch shape).
type DrawLens struct {
	Dag *DAG
}

// NewDrawLens returns a DrawLens backed by a fresh DAG.
func NewDrawLens() *DrawLens { return &DrawLens{Dag: New()} }

func separateControls(operation op.Operation) (op.Operation, qubit.QubitIntersection) {
	if c, ok := operation.(*op.ControlledOperation); ok {
		return c.Inner, c.Controls
	}
	return operation, qubit.Empty
}

// draw records inner (already stripped of its outer controls) as a step,
// recursing into ClassicalConditionOperation.Then so a deferred phase
// fixup still shows up in the DAG regardless of whether the guarding
// measurement happens to come out true at run time — the decomposition's
// structure, not the measured value, is what the diagram renders.
func (l *DrawLens) draw(inner op.Operation, ctrlQubits []qubit.Qubit) error {
	switch o := inner.(type) {
	case *op.ToggleOperation:
		_, err := l.Dag.AddStep("X", o.Targets.Qubits(), ctrlQubits)
		return err
	case *op.PhaseFlipOperation:
		if len(ctrlQubits) > 0 {
			_, err := l.Dag.AddStep("Z", ctrlQubits[len(ctrlQubits)-1:], ctrlQubits[:len(ctrlQubits)-1])
			return err
		}
	case *op.MeasureOperation:
		label := "M"
		if o.Reset {
			label = "Mr"
		}
		_, err := l.Dag.AddStep(label, o.Targets.Qubits(), nil)
		return err
	case *op.MeasureXForPhaseKickOperation:
		_, err := l.Dag.AddStep("Mx", []qubit.Qubit{o.Target}, nil)
		return err
	case *op.ClassicalConditionOperation:
		thenInner, thenControls := separateControls(o.Then)
		return l.draw(thenInner, append(append([]qubit.Qubit{}, ctrlQubits...), thenControls.Qubits()...))
	case *op.AllocQuregOperation, *op.ReleaseQuregOperation:
		// no drawn symbol; the qureg's lanes are still discovered lazily
		// the first time a gate touches one of its qubits.
	}
	return nil
}

// Modify implements emit.Lens.
func (l *DrawLens) Modify(operation op.Operation) ([]op.Operation, error) {
	inner, controls := separateControls(operation)
	if err := l.draw(inner, controls.Qubits()); err != nil {
		return nil, err
	}
	return []op.Operation{operation}, nil
}
