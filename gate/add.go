package gate

import (
	"math/bits"

	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
)

// PlusEqualArgs parameterizes PlusEqualGate. Offset and CarryIn must
// already be materialized registers (constant offsets are held into a
// scratch quint by AddAssign below before the gate ever sees them).
type PlusEqualArgs struct {
	Lvalue  quint.Quint
	Offset  quint.Quint
	CarryIn qubit.Qubit
}

type plusEqualGate struct{}

// PlusEqual is the Cuccaro ripple-carry adder: Lvalue += Offset +
// CarryIn, modulo 2^len(Lvalue).
var PlusEqual SignatureGate = plusEqualGate{}

func (plusEqualGate) Name() string { return "PlusEqualGate" }

func (plusEqualGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(PlusEqualArgs)
	offsetVal := args.Offset.Resolve(store.ReadQubit)
	carry := 0
	if store.ReadQubit(args.CarryIn) {
		carry = 1
	}
	delta := offsetVal + carry
	if !forward {
		delta = -delta
	}
	mod := 1 << uint(args.Lvalue.Len())
	cur := args.Lvalue.Resolve(store.ReadQubit)
	next := ((cur+delta)%mod + mod) % mod
	args.Lvalue.Overwrite(next, store.WriteQubit)
	return nil
}

// ctoggle builds a toggle of a single qubit controlled by c. ToggleOperation's
// ControlledBy never errors, so the error is safely discarded.
func ctoggle(q qubit.Qubit, c qubit.QubitIntersection) op.Operation {
	toggled, _ := op.NewToggle(qureg.NewRaw(q)).ControlledBy(c)
	return toggled
}

// majSweep / umaSweep implement the MAJ/UMA halves of the Cuccaro
// adder (SPEC_FULL.md §4.2): a is the carry chain (a[0]=carry-in,
// a[1..]=offset bits reused as scratch), b is the target register.
func majSweep(controls qubit.QubitIntersection, a, b, offset []qubit.Qubit) []op.Operation {
	var out []op.Operation
	for i := range offset {
		out = append(out, ctoggle(a[i], qubit.And(offset[i])))
		out = append(out, ctoggle(b[i], qubit.And(offset[i])))
		out = append(out, ctoggle(offset[i], qubit.And(a[i], b[i])))
	}
	return out
}

func umaSweep(controls qubit.QubitIntersection, a, b, offset []qubit.Qubit) []op.Operation {
	var out []op.Operation
	for i := len(offset) - 1; i >= 0; i-- {
		out = append(out, ctoggle(offset[i], qubit.And(a[i], b[i])))
		out = append(out, ctoggle(b[i], controls.Merge(qubit.And(a[i]))))
		out = append(out, ctoggle(b[i], qubit.And(offset[i])))
		out = append(out, ctoggle(a[i], qubit.And(offset[i])))
	}
	return out
}

func (plusEqualGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(PlusEqualArgs)
	inLen := args.Offset.Len()
	outLen := args.Lvalue.Len()

	aBits := make([]qubit.Qubit, inLen)
	aBits[0] = args.CarryIn
	for i := 1; i < inLen; i++ {
		aBits[i] = args.Offset.Bit(i - 1)
	}
	bBits := make([]qubit.Qubit, inLen)
	for i := 0; i < inLen; i++ {
		bBits[i] = args.Lvalue.Bit(i)
	}
	offsetBits := qubitsOf(args.Offset)

	var out []op.Operation
	out = append(out, majSweep(controls, aBits, bBits, offsetBits)...)
	if outLen == inLen+1 {
		out = append(out, ctoggle(args.Lvalue.Bit(inLen), controls.Merge(qubit.And(offsetBits[inLen-1]))))
	}
	out = append(out, umaSweep(controls, aBits, bBits, offsetBits)...)
	return out, nil
}

func (plusEqualGate) Describe(a any) string { return "plus_equal" }

// qubits helper for quint registers.
func qubitsOf(q quint.Quint) []qubit.Qubit { return q.Reg.Qubits() }

// AddAssign is the named method replacing `lvalue += offset`: it holds
// offset and carryIn into scratch registers (or reuses their existing
// storage when quantum) and emits PlusEqual.
//
// A known constant offset with carry_in held false skips its low
// trailing-zero bits entirely, addressing lvalue[k:] with offset>>k
// (SPEC_FULL.md §4.2; _examples/original_source's Quint.__iadd__) — this
// keeps the MAJ/UMA sweep, and the scratch register it materializes the
// constant into, sized to the bits that actually carry information.
func AddAssign(e *emit.Emitter, lvalue quint.Quint, offset rvalue.RValue[int], carryIn rvalue.RValue[bool]) error {
	if c, ok := offset.(*rvalue.ConstInt); ok {
		if cb, ok := carryIn.(*rvalue.ConstBool); ok && !cb.V {
			if c.V == 0 {
				return nil
			}
			if k := bits.TrailingZeros(uint(c.V)); k > 0 {
				if k >= lvalue.Len() {
					return nil
				}
				narrowed := lvalue.Slice(k, lvalue.Len())
				return AddAssign(e, narrowed, rvalue.NewConstInt(c.V>>uint(k), narrowed.Len()), carryIn)
			}
		}
	}
	return rvalue.Hold(e, offset, "offset", func(e *emit.Emitter, offsetLoc op.Location) error {
		return rvalue.Hold(e, carryIn, "carry", func(e *emit.Emitter, carryLoc op.Location) error {
			return e.Emit(NewSignatureOperation(PlusEqual, PlusEqualArgs{
				Lvalue:  lvalue,
				Offset:  offsetLoc.(quint.Quint),
				CarryIn: carryLoc.(qubit.Qubit),
			}))
		})
	})
}

// SubAssign is the named method replacing `lvalue -= offset`: the
// inverse of AddAssign over the same operation.
func SubAssign(e *emit.Emitter, lvalue quint.Quint, offset rvalue.RValue[int], carryIn rvalue.RValue[bool]) error {
	return e.WithInvert(func(e *emit.Emitter) error {
		return AddAssign(e, lvalue, offset, carryIn)
	})
}
