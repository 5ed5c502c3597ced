package count_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/count"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/testutil"
)

func TestUncontrolledToggleCountsOncePerTarget(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := count.New()
	targets := qureg.NewNamed("t", 3)
	_, err := c.Modify(op.NewToggle(targets))
	require.NoError(err)
	assert.Equal(3, c.Counts[0])
}

func TestSinglyControlledTogglePricedAtDepthOne(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := count.New()
	target := qureg.NewNamed("t", 1)
	ctrl := qubit.And(qureg.NewNamed("c", 1).At(0))
	controlled, err := op.NewToggle(target).ControlledBy(ctrl)
	require.NoError(err)

	_, err = c.Modify(controlled)
	require.NoError(err)
	assert.Equal(1, c.Counts[1])
}

func TestMultiControlledTogglePricedAsAncillaDecomposition(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := count.New()
	targets := qureg.NewNamed("t", 3)
	ctrl := qubit.And(qureg.NewNamed("a", 1).At(0)).Merge(qubit.And(qureg.NewNamed("b", 1).At(0)))
	controlled, err := op.NewToggle(targets).ControlledBy(ctrl)
	require.NoError(err)

	_, err = c.Modify(controlled)
	require.NoError(err)
	assert.Equal(2*(3-1), c.Counts[1], "every extra target beyond the first costs two singly-controlled toggles")
	assert.Equal(1, c.Counts[2], "one toggle remains at the full control depth")
}

func TestModifyNeverConsumesTheStream(t *testing.T) {
	require := require.New(t)

	c := count.New()
	toggle := op.NewToggle(qureg.NewNamed("t", 1))
	out, err := c.Modify(toggle)
	require.NoError(err)
	require.Len(out, 1)
	require.Same(toggle, out[0], "a counting lens must forward every operation unchanged")
}

func TestGateCountingScenarioStaysWithinTheTwoControlBudget(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := testutil.RunCountedMultiplyAccumulate(t)
	require.Len(c.Counts, 3, "must have exactly three nonzero control-depth buckets")
	assert.Greater(c.Counts[0], 0, "bare NOTs")
	assert.Greater(c.Counts[1], 0, "CNOT-equivalents")
	assert.Greater(c.Counts[2], 0, "Toffoli-equivalents")
	assert.LessOrEqual(c.Counts[2], 1000, "Toffoli-equivalent count must stay within the scenario's budget")
}

func TestNonToggleOperationsAreIgnoredButForwarded(t *testing.T) {
	require := require.New(t)

	c := count.New()
	reg := qureg.NewNamed("r", 2)
	alloc := &op.AllocQuregOperation{Reg: reg}
	out, err := c.Modify(alloc)
	require.NoError(err)
	require.Len(out, 1)
	require.Empty(c.Counts, "allocation must not contribute to the gate-count histogram")
}
