package gate

import (
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// AndArgs parameterizes both LetAnd and DelAnd; the two gates are a
// Paired() pair sharing this one args shape.
type AndArgs struct {
	Lvalue qubit.Qubit
}

type letAndGate struct{}

// LetAnd initializes Lvalue (must read 0) to the AND of the controls it
// is invoked under: decomposition is a single toggle of Lvalue
// controlled by those controls.
var LetAnd SignatureGate = letAndGate{}

func (letAndGate) Name() string { return "LetAnd" }

func (letAndGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(AndArgs)
	return []op.Operation{ctoggle(args.Lvalue, controls)}, nil
}

// Emulate runs unconditionally: ControlledOperation already gates the
// call on the controls reading true, so the effective semantics is
// Lvalue ^= AND(controls) in both directions (the AND gate is its own
// inverse, like OP_TOGGLE).
func (letAndGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(AndArgs)
	store.WriteQubit(args.Lvalue, !store.ReadQubit(args.Lvalue))
	return nil
}

func (letAndGate) Describe(a any) string { return "let_and" }

func (letAndGate) Paired() SignatureGate { return DelAnd }

type delAndGate struct{}

// DelAnd uncomputes a qubit previously set by LetAnd: measures it in
// the X basis with reset, then applies OP_PHASE_FLIP controlled by the
// same controls LetAnd ran under, conditional on the classical result.
var DelAnd SignatureGate = delAndGate{}

func (delAndGate) Name() string { return "DelAnd" }

func (delAndGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(AndArgs)
	m := &op.MeasureXForPhaseKickOperation{Target: args.Lvalue}
	flip, err := op.PhaseFlip.ControlledBy(controls)
	if err != nil {
		return nil, err
	}
	return []op.Operation{m, &op.ClassicalConditionOperation{Measurement: m, Then: flip}}, nil
}

// Emulate undoes LetAnd: the AND gate is self-inverse under XOR.
func (delAndGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(AndArgs)
	store.WriteQubit(args.Lvalue, !store.ReadQubit(args.Lvalue))
	return nil
}

func (delAndGate) Describe(a any) string { return "del_and" }

func (delAndGate) Paired() SignatureGate { return LetAnd }
