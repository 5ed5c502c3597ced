package gate

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
)

// PlusEqualTimesArgs parameterizes PlusEqualTimesGate.
type PlusEqualTimesArgs struct {
	Lvalue        quint.Quint
	QuantumFactor quint.Quint
	ConstFactor   int
}

type plusEqualTimesGate struct{}

// PlusEqualTimes is PlusEqualTimesGate: Lvalue += QuantumFactor *
// ConstFactor, via one controlled AddAssign per bit of QuantumFactor.
var PlusEqualTimes SignatureGate = plusEqualTimesGate{}

func (plusEqualTimesGate) Name() string { return "PlusEqualTimesGate" }

func (plusEqualTimesGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(PlusEqualTimesArgs)
	return emit.Expand(func(e *emit.Emitter) error {
		for i := 0; i < args.QuantumFactor.Len(); i++ {
			bit := args.QuantumFactor.Bit(i)
			shifted := args.ConstFactor << uint(i)
			// The control sits on the held constant, not on a
			// ConditionLens: the scratch register reads shifted only
			// under controls ∧ bit (0 otherwise), so the allocation and
			// the add stay uncontrolled. Allocations cannot be controlled.
			offset := rvalue.NewControlled[int](rvalue.NewConstInt(shifted, args.Lvalue.Len()), controls.Merge(qubit.And(bit)))
			if err := AddAssign(e, args.Lvalue, offset, rvalue.NewConstBool(false)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (plusEqualTimesGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(PlusEqualTimesArgs)
	factor := args.QuantumFactor.Resolve(store.ReadQubit)
	delta := factor * args.ConstFactor
	if !forward {
		delta = -delta
	}
	mod := 1 << uint(args.Lvalue.Len())
	cur := args.Lvalue.Resolve(store.ReadQubit)
	next := ((cur+delta)%mod + mod) % mod
	args.Lvalue.Overwrite(next, store.WriteQubit)
	return nil
}

func (plusEqualTimesGate) Describe(a any) string { return "plus_equal_times" }

// MultiplyAccumulate is the named-method form: lvalue += quantumFactor * constFactor.
func MultiplyAccumulate(e *emit.Emitter, lvalue quint.Quint, quantumFactor quint.Quint, constFactor int) error {
	return e.Emit(NewSignatureOperation(PlusEqualTimes, PlusEqualTimesArgs{
		Lvalue: lvalue, QuantumFactor: quantumFactor, ConstFactor: constFactor,
	}))
}
