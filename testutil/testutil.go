// Package testutil centralizes test fixtures shared across package test
// files: default shot/worker counts, timeout/skip helpers, and
// constructors for the canonical end-to-end scenarios of SPEC_FULL.md
// §8, so individual _test.go files build these programs once rather
// than re-deriving them.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/count"
	"github.com/coherent-ops/revq/diagram"
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/gate"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
	"github.com/coherent-ops/revq/sim"
)

// Test timeouts.
const (
	DefaultTestTimeout = 10 * time.Second
	LongTestTimeout    = 30 * time.Second
)

// Simulation parameters shared by cross-check and concurrency tests.
const (
	DefaultShots   = 1024
	SmallShots     = 100
	DefaultWorkers = 8
)

// RequireWithinTimeout runs fn on its own goroutine and fails the test
// if it does not return within timeout.
func RequireWithinTimeout(t *testing.T, timeout time.Duration, fn func() error, msgAndArgs ...interface{}) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		require.NoError(t, err, msgAndArgs...)
	case <-ctx.Done():
		t.Fatalf("operation timed out after %v: %v", timeout, msgAndArgs)
	}
}

// SkipIfShort skips the test under `go test -short`.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping test in short mode: %s", reason)
	}
}

// ResolveInt is an op.MeasureOperation.Interpret function that packs
// measured bits (little-endian) into an int.
func ResolveInt(bits []bool) any {
	v := 0
	for i, set := range bits {
		if set {
			v |= 1 << uint(i)
		}
	}
	return v
}

// RunMultiplyAccumulate builds SPEC_FULL.md §8 scenario E1 over a
// 10-bit output register: out += hold(15)*235; out += 4; measure(out,
// reset=true). Returns the measured integer.
func RunMultiplyAccumulate(t *testing.T) int {
	t.Helper()

	s := sim.New()
	e := emit.New(s)
	out := quint.New(qureg.NewNamed("out", 10))
	factor := quint.New(qureg.NewNamed("factor", 8))

	var result int
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
			m := &op.MeasureOperation{Targets: out.Reg, Reset: true, Interpret: ResolveInt}
			if err := e.Emit(m); err != nil {
				return err
			}
			result = m.Result.(int)
			return gate.XorAssignConst(e, factor, 15)
		})
	})
	require.NoError(t, err)
	return result
}

// RunCountedMultiplyAccumulate runs the same program as
// RunMultiplyAccumulate, but over a 100-bit output register and behind
// a count.CountNots lens (SPEC_FULL.md §8 scenario E2), returning the
// resulting gate-count histogram.
func RunCountedMultiplyAccumulate(t *testing.T) *count.CountNots {
	t.Helper()

	c := count.New()
	s := sim.New()
	e := emit.New(s)
	out := quint.New(qureg.NewNamed("out", 100))
	factor := quint.New(qureg.NewNamed("factor", 8))

	err := e.WithLens(c, func(e *emit.Emitter) error {
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
	})
	require.NoError(t, err)
	return c
}

// RunUnaryExpansion builds SPEC_FULL.md §8 scenario E3 for a given
// 3-bit binary value b: sets a 3-bit register to b, applies
// gate.MakeUnary into an 8-bit lvalue, measures it, then unmakes and
// restores the binary register. Returns the measured one-hot integer.
func RunUnaryExpansion(t *testing.T, b int) int {
	t.Helper()

	s := sim.New()
	e := emit.New(s)
	bin := quint.New(qureg.NewNamed("bin", 3))
	lval := quint.New(qureg.NewNamed("onehot", 8))

	var got int
	err := e.WithAlloc(bin.Reg, false, func(e *emit.Emitter) error {
		return e.WithAlloc(lval.Reg, false, func(e *emit.Emitter) error {
			if err := gate.XorAssignConst(e, bin, b); err != nil {
				return err
			}
			if err := gate.MakeUnary(e, lval, bin); err != nil {
				return err
			}
			m := &op.MeasureOperation{Targets: lval.Reg, Interpret: ResolveInt}
			if err := e.Emit(m); err != nil {
				return err
			}
			got = m.Result.(int)
			if err := gate.UnmakeUnary(e, lval, bin); err != nil {
				return err
			}
			return gate.XorAssignConst(e, bin, b)
		})
	})
	require.NoError(t, err)
	return got
}

// RunComparator builds SPEC_FULL.md §8 scenario E4: lhs/rhs held into
// 6-bit registers, compared via gate.LessThan or gate.LessOrEqual
// (toggling a flag qubit on true), measured, then unwound. Returns the
// measured flag.
func RunComparator(t *testing.T, lhs, rhs int, orEqual bool) bool {
	t.Helper()

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
				m := &op.MeasureOperation{Targets: flag, Reset: true, Interpret: ResolveInt}
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
	require.NoError(t, err)
	return result
}

// RunPhaseFixup builds SPEC_FULL.md §8 scenario E5: LetAnd then DelAnd
// on an ancilla controlled by two qubits, under the given
// phase_fixup_bias, recorded through a diagram.DrawLens. Returns the
// validated DAG.
func RunPhaseFixup(t *testing.T, bias bool) *diagram.DAG {
	t.Helper()

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
					letAnd, err := gate.NewSignatureOperation(gate.LetAnd, gate.AndArgs{Lvalue: q0.At(0)}).ControlledBy(controls)
					if err != nil {
						return err
					}
					if err := e.Emit(letAnd); err != nil {
						return err
					}
					delAnd, err := gate.NewSignatureOperation(gate.DelAnd, gate.AndArgs{Lvalue: q0.At(0)}).ControlledBy(controls)
					if err != nil {
						return err
					}
					return e.Emit(delAnd)
				})
			})
		})
	})
	require.NoError(t, err)
	require.NoError(t, drawLens.Dag.Validate())
	return drawLens.Dag
}

// RunRandomizedAdditionTrial builds one trial of SPEC_FULL.md §8
// scenario E6: a 4-bit lvalue and offset plus a carry qubit are set to
// the given values, PlusEqual is emitted into the simulator (so its
// MAJ/UMA decomposition runs) and then undone through its emulated
// semantics via MutateState(false), and the pre- and post-trial
// snapshots are returned for the caller to compare.
func RunRandomizedAdditionTrial(t *testing.T, start, offsetVal int, carryIn bool) (before, after map[qubit.Qubit]bool) {
	t.Helper()

	s := sim.New()
	lvalue := quint.New(qureg.NewNamed("lvalue", 4))
	offset := quint.New(qureg.NewNamed("offset", 4))
	carry := qureg.NewNamed("carry", 1)

	for _, q := range lvalue.Reg.Qubits() {
		s.WriteQubit(q, false)
	}
	lvalue.Overwrite(start, s.WriteQubit)
	for _, q := range offset.Reg.Qubits() {
		s.WriteQubit(q, false)
	}
	offset.Overwrite(offsetVal, s.WriteQubit)
	s.WriteQubit(carry.At(0), carryIn)

	before = s.Snapshot()

	args := gate.PlusEqualArgs{Lvalue: lvalue, Offset: offset, CarryIn: carry.At(0)}
	so := gate.NewSignatureOperation(gate.PlusEqual, args)
	require.NoError(t, emit.New(s).Emit(so))
	require.NoError(t, so.MutateState(s, false))

	after = s.Snapshot()
	return before, after
}
