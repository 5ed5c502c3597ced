package server

import (
	"strconv"

	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/gate"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
	"github.com/coherent-ops/revq/runner"
)

// ProgramTemplate builds a fresh runner.Program for one of the
// catalog's fixed demo programs. Fresh because a runner.Program
// closes over register handles that must be minted per shot.
type ProgramTemplate func() runner.Program

// catalog is the small fixed set of program definitions the HTTP
// surface can register, per SPEC_FULL.md §6.
var catalog = map[string]ProgramTemplate{
	"bell":                bellTemplate,
	"multiply-accumulate": multiplyAccumulateTemplate,
	"unary-expansion":     unaryExpansionTemplate,
}

// asIntInterpreter returns a MeasureOperation.Interpret func that reads
// the raw bit vector back as a little-endian integer.
func asIntInterpreter(bits []bool) any {
	v := 0
	for i, set := range bits {
		if set {
			v |= 1 << uint(i)
		}
	}
	return v
}

// bellTemplate is the toggle/xor demo: allocate 2 qubits, flip the
// first, XOR it onto the second, measure both.
func bellTemplate() runner.Program {
	return func(e *emit.Emitter) (string, error) {
		reg := qureg.NewNamed("bell", 2)
		var result string
		err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
			q := quint.New(reg)
			if err := gate.XorAssignConst(e, q.Slice(0, 1), 1); err != nil {
				return err
			}
			if err := gate.XorAssignQuint(e, q.Slice(1, 2), q.Slice(0, 1)); err != nil {
				return err
			}
			m := &op.MeasureOperation{Targets: reg, Reset: true, Interpret: func(bits []bool) any {
				s := make([]byte, len(bits))
				for i, b := range bits {
					if b {
						s[i] = '1'
					} else {
						s[i] = '0'
					}
				}
				return string(s)
			}}
			if err := e.Emit(m); err != nil {
				return err
			}
			result = m.Result.(string)
			return nil
		})
		return result, err
	}
}

// multiplyAccumulateTemplate is scenario E1: a 10-bit output
// accumulates hold(15)*235, then +4, then is measured with reset.
func multiplyAccumulateTemplate() runner.Program {
	return func(e *emit.Emitter) (string, error) {
		reg := qureg.NewNamed("out", 10)
		var result string
		err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
			out := quint.New(reg)
			factorReg := qureg.NewNamed("factor", 8)
			return e.WithAlloc(factorReg, false, func(e *emit.Emitter) error {
				factor := quint.New(factorReg)
				if err := gate.XorAssignConst(e, factor, 15); err != nil {
					return err
				}
				if err := gate.MultiplyAccumulate(e, out, factor, 235); err != nil {
					return err
				}
				if err := gate.AddAssign(e, out, rvalue.NewConstInt(4, out.Len()), rvalue.NewConstBool(false)); err != nil {
					return err
				}
				m := &op.MeasureOperation{Targets: reg, Reset: true, Interpret: asIntInterpreter}
				if err := e.Emit(m); err != nil {
					return err
				}
				if err := gate.XorAssignConst(e, factor, 15); err != nil {
					return err
				}
				result = strconv.Itoa(m.Result.(int))
				return nil
			})
		})
		return result, err
	}
}

// unaryExpansionTemplate is scenario E3: set a 3-bit binary register
// and expand it into an 8-bit one-hot lvalue.
func unaryExpansionTemplate() runner.Program {
	return func(e *emit.Emitter) (string, error) {
		binReg := qureg.NewNamed("bin", 3)
		lvalReg := qureg.NewNamed("onehot", 8)
		var result string
		err := e.WithAlloc(binReg, false, func(e *emit.Emitter) error {
			return e.WithAlloc(lvalReg, false, func(e *emit.Emitter) error {
				bin := quint.New(binReg)
				lval := quint.New(lvalReg)
				if err := gate.XorAssignConst(e, bin, 5); err != nil {
					return err
				}
				if err := gate.MakeUnary(e, lval, bin); err != nil {
					return err
				}
				m := &op.MeasureOperation{Targets: lvalReg, Interpret: asIntInterpreter}
				if err := e.Emit(m); err != nil {
					return err
				}
				result = strconv.Itoa(m.Result.(int))
				if err := gate.UnmakeUnary(e, lval, bin); err != nil {
					return err
				}
				return gate.XorAssignConst(e, bin, 5)
			})
		})
		return result, err
	}
}
