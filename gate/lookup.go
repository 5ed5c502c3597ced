package gate

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
)

// XorLookupArgs parameterizes XorLookupGate.
type XorLookupArgs struct {
	Lvalue  quint.Quint
	Table   *rvalue.LookupTable
	Address quint.Quint
}

type xorLookupGate struct{}

// XorLookup is XorLookupOperation: toggles Lvalue with the row Table
// selects at Address's value. It has no fundamental-gate equivalent —
// the decomposition is a multiplexer over every address pattern,
// temporarily flipping the zero-bits of Address to turn equality-to-a
// into a plain AND, applying a constant XOR gated on that match, then
// unflipping.
var XorLookup SignatureGate = xorLookupGate{}

func (xorLookupGate) Name() string { return "XorLookupOperation" }

func (xorLookupGate) Do(controls qubit.QubitIntersection, a any) ([]op.Operation, error) {
	args := a.(XorLookupArgs)
	n := args.Address.Len()
	addrBits := qubitsOf(args.Address)

	return emit.Expand(func(e *emit.Emitter) error {
		return e.WithCondition(controls, func(e *emit.Emitter) error {
			for addr := 0; addr < (1 << uint(n)); addr++ {
				mask := 0
				if addr < len(args.Table.Values) {
					mask = args.Table.Values[addr]
				}
				if mask == 0 {
					continue
				}
				var flips []op.Operation
				for i := 0; i < n; i++ {
					if addr&(1<<uint(i)) == 0 {
						flips = append(flips, ctoggle(addrBits[i], qubit.Empty))
					}
				}
				for _, f := range flips {
					if err := e.Emit(f); err != nil {
						return err
					}
				}
				xorOp, err := NewSignatureOperation(OpXorC, XorCArgs{Lvalue: args.Lvalue, Mask: mask}).
					ControlledBy(qubit.And(addrBits...))
				if err != nil {
					return err
				}
				if err := e.Emit(xorOp); err != nil {
					return err
				}
				for _, f := range flips {
					if err := e.Emit(f); err != nil {
						return err
					}
				}
			}
			return nil
		})
	})
}

func (xorLookupGate) Emulate(store op.BitStore, forward bool, a any) error {
	args := a.(XorLookupArgs)
	addr := args.Address.Resolve(store.ReadQubit)
	mask := 0
	if addr >= 0 && addr < len(args.Table.Values) {
		mask = args.Table.Values[addr]
	}
	for i := 0; i < args.Lvalue.Len(); i++ {
		if mask&(1<<uint(i)) != 0 {
			b := args.Lvalue.Bit(i)
			store.WriteQubit(b, !store.ReadQubit(b))
		}
	}
	return nil
}

func (xorLookupGate) Describe(a any) string { return "xor_lookup" }

// XorLookupRow is the named method replacing `lvalue ^= table[address]`.
func XorLookupRow(e *emit.Emitter, lvalue quint.Quint, table *rvalue.LookupTable, address quint.Quint) error {
	return e.Emit(NewSignatureOperation(XorLookup, XorLookupArgs{Lvalue: lvalue, Table: table, Address: address}))
}
