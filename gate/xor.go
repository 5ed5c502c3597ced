package gate

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
)

// XorCArgs parameterizes OP_XOR_C.
type XorCArgs struct {
	Lvalue quint.Quint
	Mask   int
}

type xorCGate struct{}

// OpXorC is OP_XOR_C: toggles each set bit of Mask in Lvalue, under
// controls. Emulation: Lvalue ^= Mask.
var OpXorC SignatureGate = xorCGate{}

func (xorCGate) Name() string { return "OP_XOR_C" }

func (xorCGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(XorCArgs)
	var bits []qubit.Qubit
	for i := 0; i < args.Lvalue.Len(); i++ {
		if args.Mask&(1<<uint(i)) != 0 {
			bits = append(bits, args.Lvalue.Bit(i))
		}
	}
	if len(bits) == 0 {
		return nil, nil
	}
	toggled, err := op.NewToggle(qureg.NewRaw(bits...)).ControlledBy(controls)
	if err != nil {
		return nil, err
	}
	return []op.Operation{toggled}, nil
}

func (xorCGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(XorCArgs)
	for i := 0; i < args.Lvalue.Len(); i++ {
		if args.Mask&(1<<uint(i)) != 0 {
			b := args.Lvalue.Bit(i)
			store.WriteQubit(b, !store.ReadQubit(b))
		}
	}
	return nil
}

func (xorCGate) Describe(a any) string { return "xor_const" }

// XorArgs parameterizes OP_XOR.
type XorArgs struct {
	Lvalue quint.Quint
	Mask   quint.Quint
}

type xorGate struct{}

// OpXor is OP_XOR: for each bit position i, toggles Lvalue[i] under
// controls ∧ Mask[i]. Emulation: Lvalue ^= Mask.
var OpXor SignatureGate = xorGate{}

func (xorGate) Name() string { return "OP_XOR" }

func (xorGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(XorArgs)
	n := args.Lvalue.Len()
	if args.Mask.Len() < n {
		n = args.Mask.Len()
	}
	var out []op.Operation
	for i := 0; i < n; i++ {
		bitControls := controls.Merge(qubit.And(args.Mask.Bit(i)))
		toggled, err := op.NewToggle(qureg.NewRaw(args.Lvalue.Bit(i))).ControlledBy(bitControls)
		if err != nil {
			return nil, err
		}
		out = append(out, toggled)
	}
	return out, nil
}

func (xorGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(XorArgs)
	n := args.Lvalue.Len()
	if args.Mask.Len() < n {
		n = args.Mask.Len()
	}
	for i := 0; i < n; i++ {
		if store.ReadQubit(args.Mask.Bit(i)) {
			b := args.Lvalue.Bit(i)
			store.WriteQubit(b, !store.ReadQubit(b))
		}
	}
	return nil
}

func (xorGate) Describe(a any) string { return "xor" }

// XorAssignConst is the named method replacing `lvalue ^= mask` for a
// classical constant mask.
func XorAssignConst(e *emit.Emitter, lvalue quint.Quint, mask int) error {
	return e.Emit(NewSignatureOperation(OpXorC, XorCArgs{Lvalue: lvalue, Mask: mask}))
}

// XorAssignQuint is the named method replacing `lvalue ^= mask` for a
// quantum mask register.
func XorAssignQuint(e *emit.Emitter, lvalue quint.Quint, mask quint.Quint) error {
	return e.Emit(NewSignatureOperation(OpXor, XorArgs{Lvalue: lvalue, Mask: mask}))
}
