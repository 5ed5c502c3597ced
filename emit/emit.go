// Package emit owns the emission pipeline: a per-value stack of
// chained lenses and the Emitter that drives operations down through
// it, falling back to an operation's own decomposition when the stack
// is exhausted (SPEC_FULL.md §4.3, §4.5 step 9).
//
// The stack is a field of *Emitter rather than process-global or
// goroutine-local state, so independent programs on independent
// Emitters may run on independent goroutines without interference
// (SPEC_FULL.md §9, "thread-local stack").
package emit

import (
	"fmt"

	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// Lens receives an operation and returns zero or more replacement
// operations to forward to the next lens down the stack.
type Lens interface {
	Modify(o op.Operation) ([]op.Operation, error)
}

// Emitter owns the active lens stack for one program. Index 0 is the
// top of the stack (closest to Emit); the last index is the bottom,
// closest to the terminal sink.
type Emitter struct {
	stack []Lens
}

// New returns an Emitter with sink installed as the bottom (and only)
// lens. Most callers install sink as a sim.Sim; observing lenses such
// as count.CountNots forward every operation and are pushed above the
// sink with WithLens.
func New(sink Lens) *Emitter {
	return &Emitter{stack: []Lens{sink}}
}

// push installs lens at the top of the stack.
func (e *Emitter) push(lens Lens) { e.stack = append([]Lens{lens}, e.stack...) }

// pop removes the top lens, returning it.
func (e *Emitter) pop() Lens {
	top := e.stack[0]
	e.stack = e.stack[1:]
	return top
}

// Emit pushes op into the top of the lens stack.
func (e *Emitter) Emit(o op.Operation) error {
	return e.emitAt(o, 0)
}

func (e *Emitter) emitAt(o op.Operation, i int) error {
	if i >= len(e.stack) {
		return e.decompose(o)
	}
	outs, err := e.stack[i].Modify(o)
	if err != nil {
		return err
	}
	for _, next := range outs {
		if err := e.emitAt(next, i+1); err != nil {
			return err
		}
	}
	return nil
}

// decompose is the outer driver of SPEC_FULL.md §4.5 step 9: an
// operation that reached the bottom of the stack unrecognized is
// lowered via its own Do and the resulting sub-operations are re-emitted
// from the top of the stack.
func (e *Emitter) decompose(o op.Operation) error {
	subs, err := o.Do(qubit.Empty)
	if err != nil {
		if err == op.ErrFundamental {
			return fmt.Errorf("no sink accepted fundamental operation %q", o.Describe())
		}
		return err
	}
	for _, sub := range subs {
		if err := e.Emit(sub); err != nil {
			return err
		}
	}
	return nil
}
