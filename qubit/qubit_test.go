package qubit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coherent-ops/revq/handle"
)

func TestQubitEqual(t *testing.T) {
	assert := assert.New(t)

	h := handle.New("q")
	a := Indexed(h, 2)
	b := Indexed(h, 2)
	c := Indexed(h, 3)
	d := New("q")

	assert.True(a.Equal(b), "same handle and index must be equal")
	assert.False(a.Equal(c), "different index must not be equal")
	assert.False(a.Equal(d), "indexed qubit must not equal a singleton over a different handle")
}

func TestAndDeduplicates(t *testing.T) {
	assert := assert.New(t)

	h := handle.New("ctrl")
	q0 := Indexed(h, 0)
	q1 := Indexed(h, 1)

	set := And(q0, q1, q0)
	assert.Equal(2, set.Len(), "duplicate qubit must be elided")
}

func TestAndIsOrderIndependent(t *testing.T) {
	assert := assert.New(t)

	h := handle.New("ctrl")
	q0 := Indexed(h, 0)
	q1 := Indexed(h, 1)
	q2 := Indexed(h, 2)

	forward := And(q0, q1, q2).Qubits()
	backward := And(q2, q1, q0).Qubits()

	assert.Equal(forward, backward, "control set iteration order must be stable regardless of construction order")
}

func TestEmptyIsAlwaysTrue(t *testing.T) {
	assert := assert.New(t)
	assert.True(Empty.IsEmpty())
	assert.Equal(0, Empty.Len())
}

func TestMergeIsCommutative(t *testing.T) {
	assert := assert.New(t)

	h := handle.New("ctrl")
	a := And(Indexed(h, 0))
	b := And(Indexed(h, 1))

	ab := a.Merge(b).Qubits()
	ba := b.Merge(a).Qubits()
	assert.Equal(ab, ba, "control-set merge must commute")
}
