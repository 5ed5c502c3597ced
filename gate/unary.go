package gate

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
)

// LetUnaryArgs parameterizes LetUnaryGate. Lvalue must be all-zero and
// at least 2^len(Binary) bits wide.
type LetUnaryArgs struct {
	Lvalue quint.Quint
	Binary quint.Quint
}

type letUnaryGate struct{}

// LetUnary is LetUnaryGate: expands a binary integer into a one-hot
// register by repeated doubling — toggle lvalue[0], then for each bit
// of binary at position i, LetAnd each lvalue[j+2^i] controlled on
// lvalue[j] ∧ that bit and fold it back into lvalue[j] via CNOT
// (SPEC_FULL.md §4.2). Its generic inverse (no Paired() override)
// naturally runs DelAnd in reverse order, since each nested LetAnd
// SignatureOperation already pairs to DelAnd.
var LetUnary SignatureGate = letUnaryGate{}

func (letUnaryGate) Name() string { return "LetUnaryGate" }

func (letUnaryGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(LetUnaryArgs)
	return emit.Expand(func(e *emit.Emitter) error {
		return e.WithCondition(controls, func(e *emit.Emitter) error {
			if err := e.Emit(NewSignatureOperation(LetAnd, AndArgs{Lvalue: args.Lvalue.Bit(0)})); err != nil {
				return err
			}
			pow := 1
			for i := 0; i < args.Binary.Len(); i++ {
				bit := args.Binary.Bit(i)
				for j := 0; j < pow; j++ {
					target := args.Lvalue.Bit(j + pow)
					letAndOp, err := NewSignatureOperation(LetAnd, AndArgs{Lvalue: target}).
						ControlledBy(qubit.And(args.Lvalue.Bit(j), bit))
					if err != nil {
						return err
					}
					if err := e.Emit(letAndOp); err != nil {
						return err
					}
					fold, err := op.NewToggle(qureg.NewRaw(args.Lvalue.Bit(j))).ControlledBy(qubit.And(target))
					if err != nil {
						return err
					}
					if err := e.Emit(fold); err != nil {
						return err
					}
				}
				pow *= 2
			}
			return nil
		})
	})
}

// Emulate toggles the single one-hot bit selected by Binary's value;
// since Lvalue starts all-zero this is self-inverse in both directions,
// matching LetAnd's own self-inverse semantics.
func (letUnaryGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(LetUnaryArgs)
	val := args.Binary.Resolve(store.ReadQubit)
	b := args.Lvalue.Bit(val)
	store.WriteQubit(b, !store.ReadQubit(b))
	return nil
}

func (letUnaryGate) Describe(a any) string { return "let_unary" }

// MakeUnary is the named method replacing `lvalue = unary(binary)`.
func MakeUnary(e *emit.Emitter, lvalue, binary quint.Quint) error {
	return e.Emit(NewSignatureOperation(LetUnary, LetUnaryArgs{Lvalue: lvalue, Binary: binary}))
}

// UnmakeUnary is the named method replacing `del lvalue = unary(binary)`:
// the inverse of MakeUnary, which runs DelAnd in reverse order.
func UnmakeUnary(e *emit.Emitter, lvalue, binary quint.Quint) error {
	return e.WithInvert(func(e *emit.Emitter) error {
		return MakeUnary(e, lvalue, binary)
	})
}
