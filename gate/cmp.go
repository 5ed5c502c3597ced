package gate

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
)

// IfLessThanArgs parameterizes IfLessThanThenGate. Callers must arrange
// Lhs to be exactly one bit wider than Rhs (the extra high bit carries
// the underflow/comparison flag); LessThan/LessOrEqual below do this
// padding via emit.Emitter.WithPad before constructing Args.
type IfLessThanArgs struct {
	Lhs     quint.Quint
	Rhs     quint.Quint
	OrEqual qubit.Qubit
	Effect  op.Operation
}

type ifLessThanThenGate struct{}

// IfLessThanThen is IfLessThanThenGate: runs the inverted UMA sweep to
// compute the underflow flag into Lhs's top bit, fires Effect
// conditional on that flag, then re-runs the sweep forward to restore
// Lhs (SPEC_FULL.md §4.2).
var IfLessThanThen SignatureGate = ifLessThanThenGate{}

func (ifLessThanThenGate) Name() string { return "IfLessThanThenGate" }

func (ifLessThanThenGate) underlying(args IfLessThanArgs) *SignatureOperation {
	return &SignatureOperation{Gate: PlusEqual, Args: PlusEqualArgs{
		Lvalue:  args.Lhs,
		Offset:  args.Rhs,
		CarryIn: args.OrEqual,
	}}
}

func (g ifLessThanThenGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(IfLessThanArgs)
	inv := &op.InverseOperation{Inner: g.underlying(args)}
	invOps, err := inv.Do(qubit.Empty)
	if err != nil {
		return nil, err
	}
	topBit := args.Lhs.Bit(args.Lhs.Len() - 1)
	effect, err := args.Effect.ControlledBy(controls.Merge(qubit.And(topBit)))
	if err != nil {
		return nil, err
	}
	fwdOps, err := g.underlying(args).Do(qubit.Empty)
	if err != nil {
		return nil, err
	}
	out := append([]op.Operation{}, invOps...)
	out = append(out, effect)
	out = append(out, fwdOps...)
	return out, nil
}

func (g ifLessThanThenGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(IfLessThanArgs)
	lhs := args.Lhs.Resolve(store.ReadQubit)
	rhs := args.Rhs.Resolve(store.ReadQubit)
	orEqual := store.ReadQubit(args.OrEqual)
	less := lhs < rhs
	if orEqual {
		less = lhs <= rhs
	}
	if less {
		return args.Effect.MutateState(store, forward)
	}
	return nil
}

func (ifLessThanThenGate) Describe(a any) string { return "if_less_than_then" }

// padCompare pads lhs/rhs to a common width n = max(len(lhs),len(rhs))
// and returns an (n+1)-bit Lhs view and an n-bit Rhs view, per the gate's
// width contract; body runs with those padded views live.
func padCompare(e *emit.Emitter, lhs, rhs quint.Quint, body func(e *emit.Emitter, lhsP, rhsP quint.Quint) error) error {
	n := lhs.Len()
	if rhs.Len() > n {
		n = rhs.Len()
	}
	return e.WithPad(lhs.Reg, n+1, func(e *emit.Emitter, lhsReg qureg.Qureg) error {
		return e.WithPad(rhs.Reg, n, func(e *emit.Emitter, rhsReg qureg.Qureg) error {
			return body(e, quint.New(lhsReg), quint.New(rhsReg))
		})
	})
}

// LessThan is IfLessThanRVal(or_equal=false): emits Effect controlled
// on lhs < rhs.
func LessThan(e *emit.Emitter, lhs, rhs quint.Quint, effect op.Operation) error {
	return compare(e, lhs, rhs, rvalue.NewConstBool(false), effect)
}

// LessOrEqual is IfLessThanRVal(or_equal=true): emits Effect controlled
// on lhs <= rhs.
func LessOrEqual(e *emit.Emitter, lhs, rhs quint.Quint, effect op.Operation) error {
	return compare(e, lhs, rhs, rvalue.NewConstBool(true), effect)
}

func compare(e *emit.Emitter, lhs, rhs quint.Quint, orEqual rvalue.RValue[bool], effect op.Operation) error {
	return padCompare(e, lhs, rhs, func(e *emit.Emitter, lhsP, rhsP quint.Quint) error {
		return rvalue.Hold(e, orEqual, "or_equal", func(e *emit.Emitter, orEqualLoc op.Location) error {
			return e.Emit(NewSignatureOperation(IfLessThanThen, IfLessThanArgs{
				Lhs: lhsP, Rhs: rhsP, OrEqual: orEqualLoc.(qubit.Qubit), Effect: effect,
			}))
		})
	})
}
