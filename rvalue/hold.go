package rvalue

import (
	"fmt"

	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
)

// Hold is the scoped "materialize an r-value into a location" pattern
// (the original HeldRValueManager): if rv already has storage, body
// runs directly over it with no allocation; otherwise a fresh location
// is allocated, Let is emitted on entry and Del on exit, and the
// ancilla is released — all suppressed on abort, per the scope-guard
// rule in SPEC_FULL.md §9.
func Hold[T any](e *emit.Emitter, rv RValue[T], name string, body func(*emit.Emitter, op.Location) error) error {
	if loc, ok := rv.ExistingStorageLocation(); ok {
		return body(e, loc)
	}
	loc := rv.MakeStorageLocation(name)
	reg, err := asQureg(loc)
	if err != nil {
		return err
	}
	return e.WithAlloc(reg, false, func(e *emit.Emitter) error {
		if err := e.Emit(&op.LetRValueOperation{Value: rv, Loc: loc}); err != nil {
			return err
		}
		if err := body(e, loc); err != nil {
			return err
		}
		return e.Emit(&op.DelRValueOperation{Value: rv, Loc: loc})
	})
}

func asQureg(loc op.Location) (qureg.Qureg, error) {
	switch v := loc.(type) {
	case qubit.Qubit:
		return qureg.NewRaw(v), nil
	case quint.Quint:
		return v.Reg, nil
	case qureg.Qureg:
		return v, nil
	default:
		return nil, fmt.Errorf("hold: location of unsupported type %T", loc)
	}
}
