package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

// recordingSink mirrors sim.Sim's leaf-dispatch logic closely enough to
// exercise the scope-guard machinery without depending on the sim
// package (which imports emit, so an internal test here cannot import
// sim without a cycle). Alloc/Release/Measure and leaf toggles are
// accepted terminally; anything else is forwarded unchanged, which
// drives the emitter's decompose fallback exactly as sim.Sim would.
type recordingSink struct {
	seen []op.Operation
}

func leafOf(o op.Operation) op.Operation {
	for {
		switch v := o.(type) {
		case *op.ControlledOperation:
			o = v.Inner
		case *op.InverseOperation:
			o = v.Inner
		default:
			return o
		}
	}
}

func (r *recordingSink) Modify(o op.Operation) ([]op.Operation, error) {
	r.seen = append(r.seen, o)
	switch o.(type) {
	case *op.AllocQuregOperation, *op.ReleaseQuregOperation, *op.MeasureOperation, *op.MeasureXForPhaseKickOperation:
		return nil, nil
	}
	switch leafOf(o).(type) {
	case *op.ToggleOperation, *op.PhaseFlipOperation:
		return nil, nil
	}
	return []op.Operation{o}, nil
}

func TestEmitForwardsThroughTheStack(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	toggle := op.NewToggle(qureg.NewNamed("t", 1))
	require.NoError(e.Emit(toggle))
	assert.Len(sink.seen, 1)
	assert.Same(toggle, sink.seen[0])
}

func TestWithCaptureCollectsWithoutBlockingForwarding(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	toggle := op.NewToggle(qureg.NewNamed("t", 1))

	captured, err := e.WithCapture(func(e *Emitter) error { return e.Emit(toggle) })
	require.NoError(err)
	assert.Len(captured, 1, "capture must collect the emitted operation")
	assert.Len(sink.seen, 1, "capture must still forward to the sink beneath it")
}

func TestWithConditionWrapsEveryEmission(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	ctrlReg := qureg.NewNamed("c", 1)
	ctrl := qubit.And(ctrlReg.At(0))

	err := e.WithCondition(ctrl, func(e *Emitter) error {
		return e.Emit(op.NewToggle(qureg.NewNamed("t", 1)))
	})
	require.NoError(err)
	require.Len(sink.seen, 1)
	controlled, ok := sink.seen[0].(*op.ControlledOperation)
	require.True(ok, "WithCondition must wrap emissions in a ControlledOperation")
	assert.Equal(1, controlled.Controls.Len())
}

func TestWithAllocEmitsAllocThenReleaseOnNormalExit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	reg := qureg.NewNamed("r", 2)

	require.NoError(e.WithAlloc(reg, false, func(e *Emitter) error { return nil }))
	require.Len(sink.seen, 2)
	_, isAlloc := sink.seen[0].(*op.AllocQuregOperation)
	_, isRelease := sink.seen[1].(*op.ReleaseQuregOperation)
	assert.True(isAlloc)
	assert.True(isRelease)
}

func TestWithAllocSuppressesReleaseOnAbort(t *testing.T) {
	assert := assert.New(t)

	sink := &recordingSink{}
	e := New(sink)
	reg := qureg.NewNamed("r", 2)
	boom := assert.AnError

	err := e.WithAlloc(reg, false, func(e *Emitter) error { return boom })
	assert.ErrorIs(err, boom)
	assert.Len(sink.seen, 1, "only the alloc should have been emitted; release must be suppressed on abort")
}

func TestWithPadCollapsesWhenAlreadyWideEnough(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	base := qureg.NewNamed("base", 4)

	err := e.WithPad(base, 4, func(e *Emitter, padded qureg.Qureg) error {
		assert.Equal(qureg.Qureg(base), padded, "no padding needed: body must see base unchanged")
		return nil
	})
	require.NoError(err)
	assert.Empty(sink.seen, "no alloc/release should occur when no padding is needed")
}

func TestWithPadAllocatesTheMissingLength(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	base := qureg.NewNamed("base", 4)

	err := e.WithPad(base, 6, func(e *Emitter, padded qureg.Qureg) error {
		assert.Equal(6, padded.Len())
		return nil
	})
	require.NoError(err)
	assert.Len(sink.seen, 2, "padding must alloc and release the extra qubits")
}

func TestWithInvertReEmitsInReverseAsInverses(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)
	a := op.NewToggle(qureg.NewNamed("a", 1))
	b := op.NewToggle(qureg.NewNamed("b", 1))

	err := e.WithInvert(func(e *Emitter) error {
		if err := e.Emit(a); err != nil {
			return err
		}
		return e.Emit(b)
	})
	require.NoError(err)
	require.Len(sink.seen, 2)
	assert.Same(b, sink.seen[0], "inversion must re-emit in reverse order")
	assert.Same(a, sink.seen[1])
}

func TestControlledOperationReachesSinkUnwrappedAtLeaf(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := &recordingSink{}
	e := New(sink)

	ctrlReg := qureg.NewNamed("c", 1)
	ctrl := qubit.And(ctrlReg.At(0))
	target := qureg.NewNamed("t", 1)
	inner := op.NewToggle(target)

	err := e.WithCondition(ctrl, func(e *Emitter) error {
		return e.Emit(inner)
	})
	require.NoError(err)
	require.Len(sink.seen, 1, "a control-wrapped leaf toggle must reach the sink directly, not decompose first")
	controlled, ok := sink.seen[0].(*op.ControlledOperation)
	require.True(ok)
	assert.Same(inner, controlled.Inner)
}
