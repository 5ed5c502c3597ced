package quint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

func TestOverwriteThenResolveRoundTrips(t *testing.T) {
	assert := assert.New(t)

	q := New(qureg.NewNamed("v", 8))
	bits := map[qubit.Qubit]bool{}
	write := func(bit qubit.Qubit, v bool) { bits[bit] = v }
	read := func(bit qubit.Qubit) bool { return bits[bit] }

	for _, want := range []int{0, 1, 42, 255} {
		q.Overwrite(want, write)
		assert.Equal(want, q.Resolve(read))
	}
}

func TestSliceViewsLowOrderBits(t *testing.T) {
	assert := assert.New(t)

	q := New(qureg.NewNamed("v", 8))
	low := q.Slice(0, 4)
	high := q.Slice(4, 8)

	assert.Equal(4, low.Len())
	assert.Equal(4, high.Len())
	assert.True(low.Bit(0).Equal(q.Bit(0)))
	assert.True(high.Bit(0).Equal(q.Bit(4)))
}
