package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/gate"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
	"github.com/coherent-ops/revq/sim"
	"github.com/coherent-ops/revq/testutil"
)

func TestAddAssignMatchesModularArithmetic(t *testing.T) {
	tests := []struct {
		lvalue, offset, carry, width int
		wantResult                   int
	}{
		{3, 4, 0, 4, 7},
		{15, 1, 0, 4, 0}, // wraps modulo 16
		{10, 5, 1, 4, 0}, // 10+5+1 = 16 -> 0 mod 16
		{0, 0, 0, 4, 0},
	}

	for _, tt := range tests {
		s := sim.New()
		e := emit.New(s)
		lvalue := quint.New(qureg.NewNamed("l", tt.width))

		err := e.WithAlloc(lvalue.Reg, false, func(e *emit.Emitter) error {
			lvalue.Overwrite(tt.lvalue, s.WriteQubit)
			carryIn := rvalue.NewConstBool(tt.carry != 0)
			if err := gate.AddAssign(e, lvalue, rvalue.NewConstInt(tt.offset, tt.width), carryIn); err != nil {
				return err
			}
			got := lvalue.Resolve(s.ReadQubit)
			require.Equal(t, tt.wantResult, got)
			lvalue.Overwrite(0, s.WriteQubit)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestAddAssignSkipsTrailingZeroBitsOfConstantOffset(t *testing.T) {
	// Offsets chosen so the constant's trailing-zero count k takes the
	// values 0, 2, 3 and 4 against a 5-bit lvalue, exercising the
	// lvalue[k:]/offset>>k path (SPEC_FULL.md §4.2) down to a single
	// remaining bit, plus one case where k exceeds the lvalue width.
	tests := []struct {
		lvalue, offset, width int
		wantResult            int
	}{
		{3, 0b00100, 5, 7},   // k=2
		{3, 0b01000, 5, 11},  // k=3
		{3, 0b10000, 5, 19},  // k=4, narrows to the top bit alone
		{0, 0b00001, 5, 1},   // k=0, no skip
		{1, 0b10000, 1, 1},   // k=4 exceeds lvalue width 1: contributes 0 mod 2^1
	}

	for _, tt := range tests {
		s := sim.New()
		e := emit.New(s)
		lvalue := quint.New(qureg.NewNamed("l", tt.width))

		err := e.WithAlloc(lvalue.Reg, false, func(e *emit.Emitter) error {
			lvalue.Overwrite(tt.lvalue, s.WriteQubit)
			offset := rvalue.NewConstInt(tt.offset, tt.width)
			carry := rvalue.NewConstBool(false)
			if err := gate.AddAssign(e, lvalue, offset, carry); err != nil {
				return err
			}
			want := tt.wantResult % (1 << uint(tt.width))
			require.Equal(t, want, lvalue.Resolve(s.ReadQubit), "lvalue=%d offset=%b width=%d", tt.lvalue, tt.offset, tt.width)
			lvalue.Overwrite(0, s.WriteQubit)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestSubAssignIsAddAssignInverse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	lvalue := quint.New(qureg.NewNamed("l", 5))

	err := e.WithAlloc(lvalue.Reg, false, func(e *emit.Emitter) error {
		lvalue.Overwrite(9, s.WriteQubit)
		offset := rvalue.NewConstInt(17, 5)
		carry := rvalue.NewConstBool(false)
		if err := gate.AddAssign(e, lvalue, offset, carry); err != nil {
			return err
		}
		if err := gate.SubAssign(e, lvalue, offset, carry); err != nil {
			return err
		}
		assert.Equal(9, lvalue.Resolve(s.ReadQubit), "add then sub must round-trip")
		lvalue.Overwrite(0, s.WriteQubit)
		return nil
	})
	require.NoError(err)
}

func TestXorAssignConstTogglesExactlyMaskedBits(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	q := quint.New(qureg.NewNamed("q", 6))

	err := e.WithAlloc(q.Reg, false, func(e *emit.Emitter) error {
		require.NoError(gate.XorAssignConst(e, q, 0b101010))
		assert.Equal(0b101010, q.Resolve(s.ReadQubit))
		require.NoError(gate.XorAssignConst(e, q, 0b101010))
		assert.Equal(0, q.Resolve(s.ReadQubit), "xor with the same mask twice must cancel out")
		return nil
	})
	require.NoError(err)
}

func TestLessThanAndLessOrEqual(t *testing.T) {
	cases := []struct {
		lhs, rhs int
		lt, le   bool
	}{
		{3, 5, true, true},
		{5, 5, false, true},
		{5, 3, false, false},
	}

	for _, tc := range cases {
		for _, orEqual := range []bool{false, true} {
			s := sim.New()
			e := emit.New(s)
			l := quint.New(qureg.NewNamed("lhs", 4))
			r := quint.New(qureg.NewNamed("rhs", 4))
			flag := qureg.NewNamed("flag", 1)

			err := e.WithAlloc(l.Reg, false, func(e *emit.Emitter) error {
				return e.WithAlloc(r.Reg, false, func(e *emit.Emitter) error {
					return e.WithAlloc(flag, false, func(e *emit.Emitter) error {
						l.Overwrite(tc.lhs, s.WriteQubit)
						r.Overwrite(tc.rhs, s.WriteQubit)
						toggle := op.NewToggle(flag)
						var err error
						if orEqual {
							err = gate.LessOrEqual(e, l, r, toggle)
						} else {
							err = gate.LessThan(e, l, r, toggle)
						}
						if err != nil {
							return err
						}
						got := s.ReadQubit(flag.At(0))
						want := tc.lt
						if orEqual {
							want = tc.le
						}
						require.Equal(t, want, got, "lhs=%d rhs=%d orEqual=%v", tc.lhs, tc.rhs, orEqual)
						s.WriteQubit(flag.At(0), false)
						l.Overwrite(0, s.WriteQubit)
						r.Overwrite(0, s.WriteQubit)
						return nil
					})
				})
			})
			require.NoError(t, err)
		}
	}
}

func TestMakeUnaryThenUnmakeUnaryRoundTrips(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	for b := 0; b < 4; b++ {
		s := sim.New()
		e := emit.New(s)
		bin := quint.New(qureg.NewNamed("bin", 2))
		onehot := quint.New(qureg.NewNamed("onehot", 4))

		err := e.WithAlloc(bin.Reg, false, func(e *emit.Emitter) error {
			return e.WithAlloc(onehot.Reg, false, func(e *emit.Emitter) error {
				bin.Overwrite(b, s.WriteQubit)
				require.NoError(gate.MakeUnary(e, onehot, bin))
				assert.Equal(1<<uint(b), onehot.Resolve(s.ReadQubit))
				require.NoError(gate.UnmakeUnary(e, onehot, bin))
				assert.Equal(0, onehot.Resolve(s.ReadQubit), "unmake must zero the one-hot register")
				bin.Overwrite(0, s.WriteQubit)
				return nil
			})
		})
		require.NoError(err)
	}
}

func TestLetAndThenDelAndUncomputesTheAncilla(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	for _, ctrlVals := range [][2]bool{{false, false}, {true, false}, {true, true}} {
		s := sim.New(sim.PhaseFixupBias(false))
		e := emit.New(s)
		ctrlReg := qureg.NewNamed("c", 2)
		ancillaReg := qureg.NewNamed("a", 1)

		err := e.WithAlloc(ctrlReg, false, func(e *emit.Emitter) error {
			s.WriteQubit(ctrlReg.At(0), ctrlVals[0])
			s.WriteQubit(ctrlReg.At(1), ctrlVals[1])
			return e.WithAlloc(ancillaReg, false, func(e *emit.Emitter) error {
				ctrl := qubit.And(ctrlReg.At(0), ctrlReg.At(1))
				args := gate.AndArgs{Lvalue: ancillaReg.At(0)}
				let, err := gate.NewSignatureOperation(gate.LetAnd, args).ControlledBy(ctrl)
				if err != nil {
					return err
				}
				if err := e.Emit(let); err != nil {
					return err
				}
				assert.Equal(ctrlVals[0] && ctrlVals[1], s.ReadQubit(ancillaReg.At(0)))

				del, err := gate.NewSignatureOperation(gate.DelAnd, args).ControlledBy(ctrl)
				if err != nil {
					return err
				}
				return e.Emit(del)
			})
		})
		require.NoError(err, "ctrlVals=%v", ctrlVals)
	}
}

func TestXorLookupRowTogglesTheSelectedEntry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table := rvalue.NewLookupTable(1, 2, 3, 4)
	s := sim.New()
	e := emit.New(s)
	lvalue := quint.New(qureg.NewNamed("l", 4))
	addr := quint.New(qureg.NewNamed("addr", 2))

	err := e.WithAlloc(lvalue.Reg, false, func(e *emit.Emitter) error {
		return e.WithAlloc(addr.Reg, false, func(e *emit.Emitter) error {
			addr.Overwrite(2, s.WriteQubit)
			require.NoError(gate.XorLookupRow(e, lvalue, table, addr))
			assert.Equal(table.Values[2], lvalue.Resolve(s.ReadQubit))
			require.NoError(gate.XorLookupRow(e, lvalue, table, addr))
			assert.Equal(0, lvalue.Resolve(s.ReadQubit), "xor-ing the same row twice must cancel out")
			addr.Overwrite(0, s.WriteQubit)
			return nil
		})
	})
	require.NoError(err)
}

func TestMultiplyAccumulateThenAddConstMatchesScenarioE1(t *testing.T) {
	require.Equal(t, 457, testutil.RunMultiplyAccumulate(t))
}

func TestRandomizedAdditionCrossCheckMatchesScenarioE6(t *testing.T) {
	assert := assert.New(t)

	trials := []struct {
		start, offset int
		carryIn       bool
	}{
		{0, 0, false}, {15, 15, true}, {7, 9, false}, {3, 3, true}, {12, 1, false},
	}
	for _, tt := range trials {
		before, after := testutil.RunRandomizedAdditionTrial(t, tt.start, tt.offset, tt.carryIn)
		assert.Equal(before, after, "forward PlusEqual followed by its inverse must restore the snapshot")
	}
}

func TestUnaryExpansionMatchesScenarioE3(t *testing.T) {
	assert := assert.New(t)

	for b := 0; b < 8; b++ {
		assert.Equal(1<<uint(b), testutil.RunUnaryExpansion(t, b), "b=%d", b)
	}
}

func TestComparatorMatchesScenarioE4(t *testing.T) {
	assert := assert.New(t)

	assert.True(testutil.RunComparator(t, 37, 42, false), "37 < 42")
	assert.False(testutil.RunComparator(t, 42, 42, false), "42 < 42")
	assert.True(testutil.RunComparator(t, 42, 42, true), "42 <= 42")
}

func TestMultiplyAccumulate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	out := quint.New(qureg.NewNamed("out", 12))
	factor := quint.New(qureg.NewNamed("factor", 8))

	err := e.WithAlloc(out.Reg, false, func(e *emit.Emitter) error {
		return e.WithAlloc(factor.Reg, false, func(e *emit.Emitter) error {
			factor.Overwrite(15, s.WriteQubit)
			require.NoError(gate.MultiplyAccumulate(e, out, factor, 235))
			assert.Equal(15*235, out.Resolve(s.ReadQubit))
			out.Overwrite(0, s.WriteQubit)
			factor.Overwrite(0, s.WriteQubit)
			return nil
		})
	})
	require.NoError(err)
}
