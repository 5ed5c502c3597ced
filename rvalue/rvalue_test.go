package rvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
	"github.com/coherent-ops/revq/rvalue"
	"github.com/coherent-ops/revq/sim"
)

func TestHoldMaterializesConstIntThenReleases(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	rv := rvalue.NewConstInt(11, 5)

	err := rvalue.Hold(e, rv, "held", func(e *emit.Emitter, loc op.Location) error {
		q := loc.(quint.Quint)
		assert.Equal(11, q.Resolve(s.ReadQubit))
		return nil
	})
	require.NoError(err, "the held ancilla must uncompute back to zero before release")
}

func TestHoldOverExistingStorageRunsBodyDirectly(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	reg := qureg.NewNamed("existing", 1)

	err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
		rv := rvalue.NewQubitBacked(reg.At(0))
		s.WriteQubit(reg.At(0), true)
		return rvalue.Hold(e, rv, "unused", func(e *emit.Emitter, loc op.Location) error {
			q, ok := loc.(qubit.Qubit)
			require.True(ok)
			assert.True(q.Equal(reg.At(0)), "existing storage must be handed to body unchanged, no copy made")
			return nil
		})
	})
	require.NoError(err)
}

func TestConstBoolInitTogglesOnlyWhenTrue(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	for _, v := range []bool{false, true} {
		s := sim.New()
		e := emit.New(s)
		reg := qureg.NewNamed("b", 1)

		err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
			rv := rvalue.NewConstBool(v)
			err := rvalue.Hold(e, rv, "b2", func(e *emit.Emitter, loc op.Location) error {
				q := loc.(qubit.Qubit)
				assert.Equal(v, s.ReadQubit(q))
				return nil
			})
			return err
		})
		require.NoError(err)
	}
}

func TestQuintBackedResolveReflectsLiveState(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	reg := qureg.NewNamed("q", 4)

	err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
		q := quint.New(reg)
		q.Overwrite(9, s.WriteQubit)
		rv := rvalue.NewQuintBacked(q)
		assert.Equal(9, rv.Resolve(s))
		_, existing := rv.ExistingStorageLocation()
		assert.True(existing, "a quint-backed r-value must report its own storage, never a copy")
		q.Overwrite(0, s.WriteQubit)
		return nil
	})
	require.NoError(err)
}

func TestControlledMergesWithAlreadyControlledInner(t *testing.T) {
	assert := assert.New(t)

	ctrlA := qubit.And(qureg.NewNamed("a", 1).At(0))
	ctrlB := qubit.And(qureg.NewNamed("b", 1).At(0))
	inner := rvalue.NewConstBool(true)

	onceAny := rvalue.NewControlled[bool](inner, ctrlA)
	twiceAny := rvalue.NewControlled[bool](onceAny, ctrlB)

	twice, ok := twiceAny.(*rvalue.Controlled[bool])
	assert.True(ok)
	assert.Equal(2, twice.Controls.Len(), "controls from both wraps must merge into one layer")
	assert.Same(inner, twice.Inner, "the innermost r-value must not be re-wrapped")
}

func TestControlledByEmptyReturnsInnerUnwrapped(t *testing.T) {
	assert := assert.New(t)

	inner := rvalue.NewConstBool(true)
	same := rvalue.NewControlled[bool](inner, qubit.Empty)
	assert.Same(inner, same)
}

func TestScaledIntResolveMultipliesByConstant(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	reg := qureg.NewNamed("s", 4)

	err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
		q := quint.New(reg)
		q.Overwrite(3, s.WriteQubit)
		scaled := rvalue.NewScaledInt(rvalue.NewQuintBacked(q), 7)
		assert.Equal(21, scaled.Resolve(s))
		q.Overwrite(0, s.WriteQubit)
		return nil
	})
	require.NoError(err)
}

func TestScaledIntHasNoDirectStorageBinding(t *testing.T) {
	assert := assert.New(t)

	scaled := rvalue.NewScaledInt(rvalue.NewConstInt(5, 4), 2)
	_, err := scaled.InitStorageLocation(nil, qubit.Empty)
	assert.Error(err, "a scaled-int r-value cannot be materialized directly; it only composes under PlusEqualTimesGate")
}

func TestLookupResolvesTheAddressedRow(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	table := rvalue.NewLookupTable(10, 20, 30)
	addrReg := qureg.NewNamed("addr", 2)

	err := e.WithAlloc(addrReg, false, func(e *emit.Emitter) error {
		addr := quint.New(addrReg)
		addr.Overwrite(1, s.WriteQubit)
		lk := rvalue.NewLookup(table, addr)
		assert.Equal(20, lk.Resolve(s))
		_, existing := lk.ExistingStorageLocation()
		assert.False(existing)
		addr.Overwrite(0, s.WriteQubit)
		return nil
	})
	require.NoError(err)
}

func TestLookupOutOfRangeAddressResolvesToZero(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := sim.New()
	e := emit.New(s)
	table := rvalue.NewLookupTable(10, 20)
	addrReg := qureg.NewNamed("addr", 2)

	err := e.WithAlloc(addrReg, false, func(e *emit.Emitter) error {
		addr := quint.New(addrReg)
		addr.Overwrite(3, s.WriteQubit)
		lk := rvalue.NewLookup(table, addr)
		assert.Equal(0, lk.Resolve(s))
		addr.Overwrite(0, s.WriteQubit)
		return nil
	})
	require.NoError(err)
}

func TestConstIntPhaseFlipIfIsUndefined(t *testing.T) {
	assert := assert.New(t)

	c := rvalue.NewConstInt(1, 4)
	_, err := c.PhaseFlipIf(qubit.Empty)
	assert.Error(err, "phase_flip_if is only meaningful for bool-valued r-values")
}
