// Command revqdemo reproduces SPEC_FULL.md §8's end-to-end scenarios
// (E1-E7) against the classical simulator, the gate-counting lens, the
// diagram lens, and the optional itsubaki/q cross-check backend.
package main

import (
	"fmt"
	"math/rand"

	"github.com/coherent-ops/revq/count"
	"github.com/coherent-ops/revq/diagram"
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/gate"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
	"github.com/coherent-ops/revq/runner"
	"github.com/coherent-ops/revq/runner/xcheckrunner"
	"github.com/coherent-ops/revq/sim"
)

func main() {
	fmt.Println("--- E1: multiply-accumulate + measure ---")
	e1MultiplyAccumulate()
	fmt.Println("\n--- E2: gate counting ---")
	e2GateCounting()
	fmt.Println("\n--- E3: unary expansion ---")
	e3UnaryExpansion()
	fmt.Println("\n--- E4: comparator ---")
	e4Comparator()
	fmt.Println("\n--- E5: DelAnd phase-fixup ---")
	e5PhaseFixup()
	fmt.Println("\n--- E6: randomized addition cross-check ---")
	e6RandomizedAddition()
	fmt.Println("\n--- E7: cross-check backend agreement ---")
	e7CrossCheckAgreement()
}

func e1MultiplyAccumulate() {
	s := sim.New()
	e := emit.New(s)

	out := quint.New(qureg.NewNamed("out", 10))
	factor := quint.New(qureg.NewNamed("factor", 8))

	err := e.WithAlloc(out.Reg, false, func(e *emit.Emitter) error {
		return e.WithAlloc(factor.Reg, false, func(e *emit.Emitter) error {
			if err := gate.XorAssignConst(e, factor, 15); err != nil {
				return err
			}
			if err := gate.MultiplyAccumulate(e, out, factor, 235); err != nil {
				return err
			}
			if err := gate.AddAssign(e, out, rvalue.NewConstInt(4, out.Len()), rvalue.NewConstBool(false)); err != nil {
				return err
			}
			m := &op.MeasureOperation{Targets: out.Reg, Reset: true, Interpret: resolveInt}
			if err := e.Emit(m); err != nil {
				return err
			}
			fmt.Printf("out = %d (want 457)\n", m.Result.(int))
			return gate.XorAssignConst(e, factor, 15)
		})
	})
	if err != nil {
		fmt.Println("error:", err)
	}
}

func e2GateCounting() {
	c := count.New()
	s := sim.New()
	e := emit.New(s)
	if err := e.WithLens(c, func(e *emit.Emitter) error {
		out := quint.New(qureg.NewNamed("out", 100))
		factor := quint.New(qureg.NewNamed("factor", 8))
		return e.WithAlloc(out.Reg, false, func(e *emit.Emitter) error {
			return e.WithAlloc(factor.Reg, false, func(e *emit.Emitter) error {
				if err := gate.XorAssignConst(e, factor, 15); err != nil {
					return err
				}
				if err := gate.MultiplyAccumulate(e, out, factor, 235); err != nil {
					return err
				}
				if err := gate.AddAssign(e, out, rvalue.NewConstInt(4, out.Len()), rvalue.NewConstBool(false)); err != nil {
					return err
				}
				m := &op.MeasureOperation{Targets: out.Reg, Reset: true}
				if err := e.Emit(m); err != nil {
					return err
				}
				return gate.XorAssignConst(e, factor, 15)
			})
		})
	}); err != nil {
		fmt.Println("error:", err)
		return
	}
	for controls, n := range c.Counts {
		fmt.Printf("controls=%d: %d gates\n", controls, n)
	}
}

func e3UnaryExpansion() {
	for b := 0; b < 8; b++ {
		s := sim.New()
		e := emit.New(s)
		bin := quint.New(qureg.NewNamed("bin", 3))
		lval := quint.New(qureg.NewNamed("onehot", 8))
		err := e.WithAlloc(bin.Reg, false, func(e *emit.Emitter) error {
			return e.WithAlloc(lval.Reg, false, func(e *emit.Emitter) error {
				if err := gate.XorAssignConst(e, bin, b); err != nil {
					return err
				}
				if err := gate.MakeUnary(e, lval, bin); err != nil {
					return err
				}
				m := &op.MeasureOperation{Targets: lval.Reg, Interpret: resolveInt}
				if err := e.Emit(m); err != nil {
					return err
				}
				got := m.Result.(int)
				want := 1 << uint(b)
				status := "ok"
				if got != want {
					status = "MISMATCH"
				}
				fmt.Printf("b=%d: onehot=%d want=%d [%s]\n", b, got, want, status)
				if err := gate.UnmakeUnary(e, lval, bin); err != nil {
					return err
				}
				return gate.XorAssignConst(e, bin, b)
			})
		})
		if err != nil {
			fmt.Println("error:", err)
		}
	}
}

func e4Comparator() {
	runCase := func(lhs, rhs int, orEqual bool) bool {
		s := sim.New()
		e := emit.New(s)
		l := quint.New(qureg.NewNamed("lhs", 6))
		r := quint.New(qureg.NewNamed("rhs", 6))
		flag := qureg.NewNamed("flag", 1)
		var result bool
		err := e.WithAlloc(l.Reg, false, func(e *emit.Emitter) error {
			return e.WithAlloc(r.Reg, false, func(e *emit.Emitter) error {
				return e.WithAlloc(flag, false, func(e *emit.Emitter) error {
					if err := gate.XorAssignConst(e, l, lhs); err != nil {
						return err
					}
					if err := gate.XorAssignConst(e, r, rhs); err != nil {
						return err
					}
					toggle := op.NewToggle(qureg.NewRaw(flag.At(0)))
					var cmpErr error
					if orEqual {
						cmpErr = gate.LessOrEqual(e, l, r, toggle)
					} else {
						cmpErr = gate.LessThan(e, l, r, toggle)
					}
					if cmpErr != nil {
						return cmpErr
					}
					m := &op.MeasureOperation{Targets: flag, Reset: true, Interpret: resolveInt}
					if err := e.Emit(m); err != nil {
						return err
					}
					result = m.Result.(int) != 0
					if err := gate.XorAssignConst(e, r, rhs); err != nil {
						return err
					}
					return gate.XorAssignConst(e, l, lhs)
				})
			})
		})
		if err != nil {
			fmt.Println("error:", err)
		}
		return result
	}

	fmt.Printf("37 < 42: %v (want true)\n", runCase(37, 42, false))
	fmt.Printf("42 < 42: %v (want false)\n", runCase(42, 42, false))
	fmt.Printf("42 <= 42: %v (want true)\n", runCase(42, 42, true))
}

func e5PhaseFixup() {
	runCase := func(bias bool) *diagram.DAG {
		s := sim.New(sim.PhaseFixupBias(bias))
		e := emit.New(s)
		drawLens := diagram.NewDrawLens()
		q0 := qureg.NewNamed("q0", 1)
		q1 := qureg.NewNamed("q1", 1)
		q2 := qureg.NewNamed("q2", 1)
		err := e.WithAlloc(q0, false, func(e *emit.Emitter) error {
			return e.WithAlloc(q1, false, func(e *emit.Emitter) error {
				return e.WithAlloc(q2, false, func(e *emit.Emitter) error {
					controls := qubit.And(q1.At(0), q2.At(0))
					return e.WithLens(drawLens, func(e *emit.Emitter) error {
						letAnd, _ := gate.NewSignatureOperation(gate.LetAnd, gate.AndArgs{Lvalue: q0.At(0)}).ControlledBy(controls)
						if err := e.Emit(letAnd); err != nil {
							return err
						}
						delAnd, _ := gate.NewSignatureOperation(gate.DelAnd, gate.AndArgs{Lvalue: q0.At(0)}).ControlledBy(controls)
						return e.Emit(delAnd)
					})
				})
			})
		})
		if err != nil {
			fmt.Println("error:", err)
		}
		drawLens.Dag.Validate()
		return drawLens.Dag
	}

	for _, bias := range []bool{true, false} {
		dag := runCase(bias)
		var symbols []string
		for _, n := range dag.Steps() {
			symbols = append(symbols, n.Symbol)
		}
		fmt.Printf("phase_fixup_bias=%v: drawn steps %v (the Mx/Z structure is fixed; bias only pins the measured Result bit)\n", bias, symbols)
	}
}

func e6RandomizedAddition() {
	mismatches := 0
	for trial := 0; trial < 10; trial++ {
		s := sim.New()
		lvalue := quint.New(qureg.NewNamed("lvalue", 4))
		offset := quint.New(qureg.NewNamed("offset", 4))
		carry := qureg.NewNamed("carry", 1)

		start := rand.Intn(16)
		off := rand.Intn(16)
		carryIn := rand.Intn(2) == 1

		for _, q := range lvalue.Reg.Qubits() {
			s.WriteQubit(q, false)
		}
		lvalue.Overwrite(start, s.WriteQubit)
		for _, q := range offset.Reg.Qubits() {
			s.WriteQubit(q, false)
		}
		offset.Overwrite(off, s.WriteQubit)
		s.WriteQubit(carry.At(0), carryIn)

		before := s.Snapshot()

		args := gate.PlusEqualArgs{Lvalue: lvalue, Offset: offset, CarryIn: carry.At(0)}
		so := gate.NewSignatureOperation(gate.PlusEqual, args)
		if err := emit.New(s).Emit(so); err != nil {
			fmt.Println("error:", err)
			continue
		}
		if err := so.MutateState(s, false); err != nil {
			fmt.Println("error:", err)
			continue
		}

		after := s.Snapshot()
		for q, v := range before {
			if after[q] != v {
				mismatches++
				break
			}
		}
	}
	fmt.Printf("%d/10 trials mismatched after forward+inverse (want 0)\n", mismatches)
}

func e7CrossCheckAgreement() {
	program := func(e *emit.Emitter) (string, error) {
		reg := qureg.NewNamed("bits", 2)
		var result string
		err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
			q := quint.New(reg)
			if err := e.Emit(op.NewToggle(qureg.NewRaw(q.Bit(0)))); err != nil {
				return err
			}
			bitControls := qubit.And(q.Bit(0))
			toggled, err := op.NewToggle(qureg.NewRaw(q.Bit(1))).ControlledBy(bitControls)
			if err != nil {
				return err
			}
			if err := e.Emit(toggled); err != nil {
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

	classical, err := runner.NewSimulator(runner.SimulatorOptions{Shots: 200, Runner: runner.NewSimRunner()}).Run(program)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	xc, err := runner.NewSimulator(runner.SimulatorOptions{Shots: 200, Runner: xcheckrunner.New(2)}).Run(program)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	agree := true
	for key := range classical {
		if xc[key] == 0 {
			agree = false
		}
	}
	for key := range xc {
		if classical[key] == 0 {
			agree = false
		}
	}
	fmt.Printf("classical=%v xcheck=%v agree=%v\n", classical, xc, agree)
}

func resolveInt(bits []bool) any {
	v := 0
	for i, set := range bits {
		if set {
			v |= 1 << uint(i)
		}
	}
	return v
}
