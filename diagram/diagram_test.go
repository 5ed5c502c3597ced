package diagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/diagram"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/testutil"
)

func TestDrawLensRecordsToggleAsBoxedStep(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := diagram.NewDrawLens()
	target := qureg.NewNamed("t", 1)
	_, err := l.Modify(op.NewToggle(target))
	require.NoError(err)
	require.NoError(l.Dag.Validate())

	steps := l.Dag.Steps()
	require.Len(steps, 1)
	assert.Equal("X", steps[0].Symbol)
}

func TestDrawLensSplitsControlsFromTargets(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := diagram.NewDrawLens()
	target := qureg.NewNamed("t", 1)
	ctrl := qubit.And(qureg.NewNamed("c", 1).At(0))
	controlled, err := op.NewToggle(target).ControlledBy(ctrl)
	require.NoError(err)

	_, err = l.Modify(controlled)
	require.NoError(err)
	require.NoError(l.Dag.Validate())

	steps := l.Dag.Steps()
	require.Len(steps, 1)
	assert.Len(steps[0].Targets, 1)
	assert.Len(steps[0].Controls, 1)
}

func TestDrawLensNeverConsumesTheStream(t *testing.T) {
	require := require.New(t)

	l := diagram.NewDrawLens()
	toggle := op.NewToggle(qureg.NewNamed("t", 1))
	out, err := l.Modify(toggle)
	require.NoError(err)
	require.Len(out, 1)
	require.Same(toggle, out[0])
}

func TestDependentStepsAreOrderedByLaneReuse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := diagram.NewDrawLens()
	a := qureg.NewNamed("a", 1)
	_, err := l.Modify(op.NewToggle(a))
	require.NoError(err)
	_, err = l.Modify(op.NewToggle(a))
	require.NoError(err)
	require.NoError(l.Dag.Validate())

	steps := l.Dag.Steps()
	require.Len(steps, 2)
	assert.Equal(0, l.Dag.Column(steps[0]))
	assert.Equal(1, l.Dag.Column(steps[1]), "the second toggle on the same lane must be placed one column later")
}

func TestClassicalConditionDrawsItsThenRegardlessOfTheMeasuredValue(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := diagram.NewDrawLens()
	anc := qureg.NewNamed("anc", 1).At(0)
	c1 := qureg.NewNamed("c1", 1).At(0)
	c2 := qureg.NewNamed("c2", 1).At(0)

	m := &op.MeasureXForPhaseKickOperation{Target: anc, Result: false}
	then, err := op.PhaseFlip.ControlledBy(qubit.And(c1, c2))
	require.NoError(err)

	_, err = l.Modify(&op.ClassicalConditionOperation{Measurement: m, Then: then})
	require.NoError(err)
	require.NoError(l.Dag.Validate())

	steps := l.Dag.Steps()
	require.Len(steps, 1, "a deferred phase fixup must render its Z step even though Result is false")
	assert.Equal("Z", steps[0].Symbol)
	assert.Len(steps[0].Targets, 1)
	assert.Len(steps[0].Controls, 1)
}

func TestPhaseFixupAlwaysDrawsItsConditionalFixupPerScenarioE5(t *testing.T) {
	// The diagram renders DelAnd's decomposition structurally: the
	// conditional Z fixup is always present regardless of which way
	// phase_fixup_bias happens to resolve the guarding measurement
	// (diagram/lens.go's DrawLens.Modify draws ClassicalConditionOperation.Then
	// unconditionally) — only the simulator's classical Result bit
	// differs by bias, not the rendered step structure.
	assert := assert.New(t)

	for _, bias := range []bool{true, false} {
		dag := testutil.RunPhaseFixup(t, bias)
		symbols := make([]string, len(dag.Steps()))
		for i, n := range dag.Steps() {
			symbols[i] = n.Symbol
		}
		assert.Contains(symbols, "Mx", "bias=%v must show the X-basis measurement", bias)
		assert.Contains(symbols, "Z", "bias=%v must still show the conditional controlled-Z fixup", bias)
	}
}

func TestAllocReleaseDrawNoSymbol(t *testing.T) {
	require := require.New(t)

	l := diagram.NewDrawLens()
	reg := qureg.NewNamed("r", 2)
	_, err := l.Modify(&op.AllocQuregOperation{Reg: reg})
	require.NoError(err)
	_, err = l.Modify(&op.ReleaseQuregOperation{Reg: reg})
	require.NoError(err)
	require.NoError(l.Dag.Validate())
	require.Empty(l.Dag.Steps())
}
