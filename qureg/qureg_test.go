package qureg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamedIndexing(t *testing.T) {
	assert := assert.New(t)

	r := NewNamed("r", 4)
	assert.Equal(4, r.Len())
	assert.True(r.At(0).Equal(r.At(0)))
	assert.False(r.At(0).Equal(r.At(1)))
	assert.Len(r.Qubits(), 4)
}

func TestFullRangeCollapsesToBase(t *testing.T) {
	assert := assert.New(t)

	base := NewNamed("base", 5)
	view := NewRange(base, 0, 5, 1)

	assert.Equal(Qureg(base), view, "a range covering the whole base must collapse to the base itself")
}

func TestPartialRangeIsAWrapper(t *testing.T) {
	assert := assert.New(t)

	base := NewNamed("base", 5)
	view := Slice(base, 1, 3)

	assert.Equal(2, view.Len())
	assert.True(view.At(0).Equal(base.At(1)))
	assert.True(view.At(1).Equal(base.At(2)))
}

func TestSteppedRange(t *testing.T) {
	assert := assert.New(t)

	base := NewNamed("base", 6)
	view := NewRange(base, 0, 6, 2)

	assert.Equal(3, view.Len())
	assert.True(view.At(0).Equal(base.At(0)))
	assert.True(view.At(1).Equal(base.At(2)))
	assert.True(view.At(2).Equal(base.At(4)))
}

func TestConcatPreservesOrder(t *testing.T) {
	assert := assert.New(t)

	a := NewNamed("a", 2)
	b := NewNamed("b", 3)
	joined := Concat(a, b)

	assert.Equal(5, joined.Len())
	assert.True(joined.At(0).Equal(a.At(0)))
	assert.True(joined.At(2).Equal(b.At(0)))
}
