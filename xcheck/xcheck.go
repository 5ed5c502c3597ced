// Package xcheck is an optional cross-check terminal lens backed by
// github.com/itsubaki/q's statevector simulator. It is deliberately
// narrow: it accepts only Alloc/Release/Measure and Toggle operations
// with at most two controls (X, CNOT, Toffoli), so a program's
// classical truth table (from sim.Sim) can be spot-checked against a
// real unitary evolution rather than trusted on emulation logic alone.
// itsubaki/q is never wired into the core sim.Sim — only here.
package xcheck

import (
	"fmt"

	"github.com/itsubaki/q"

	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// Backend reserves capacity qubits up front (itsubaki/q's Q grows a
// dense statevector, so capacity should be sized to the program's peak
// live-qubit count) and assigns them to DSL qubits in first-seen order.
type Backend struct {
	Sim    *q.Q
	pool   []q.Qubit
	qubits map[qubit.Qubit]q.Qubit
	next   int
}

// New reserves capacity qubits in a fresh itsubaki/q state.
func New(capacity int) *Backend {
	sim := q.New()
	return &Backend{Sim: sim, pool: sim.ZeroWith(capacity), qubits: make(map[qubit.Qubit]q.Qubit)}
}

func (b *Backend) bind(qb qubit.Qubit) (q.Qubit, error) {
	if existing, ok := b.qubits[qb]; ok {
		return existing, nil
	}
	if b.next >= len(b.pool) {
		var zero q.Qubit
		return zero, fmt.Errorf("xcheck: exceeded reserved capacity of %d qubits", len(b.pool))
	}
	fresh := b.pool[b.next]
	b.next++
	b.qubits[qb] = fresh
	return fresh, nil
}

func separateControls(operation op.Operation) (op.Operation, qubit.QubitIntersection) {
	if c, ok := operation.(*op.ControlledOperation); ok {
		return c.Inner, c.Controls
	}
	return operation, qubit.Empty
}

// Modify implements emit.Lens. It never forwards: unsupported
// operations are reported as an error rather than silently decomposed,
// since a Backend is meant to run a whole program end to end and any
// operation outside its 0/1/2-control-toggle scope invalidates the
// cross-check.
func (b *Backend) Modify(operation op.Operation) ([]op.Operation, error) {
	switch o := operation.(type) {
	case *op.AllocQuregOperation:
		for _, qb := range o.Reg.Qubits() {
			if _, err := b.bind(qb); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case *op.ReleaseQuregOperation:
		return nil, nil
	case *op.MeasureOperation:
		raw := make([]bool, o.Targets.Len())
		for i, qb := range o.Targets.Qubits() {
			tq, err := b.bind(qb)
			if err != nil {
				return nil, err
			}
			raw[i] = b.Sim.Measure(tq).IsOne()
		}
		o.Raw = raw
		if o.Interpret != nil {
			o.Result = o.Interpret(raw)
		}
		return nil, nil
	}

	inner, controls := separateControls(operation)
	toggle, ok := inner.(*op.ToggleOperation)
	if !ok {
		return nil, fmt.Errorf("xcheck: operation %q is out of the cross-check backend's scope", operation.Describe())
	}

	ctrl := controls.Qubits()
	if len(ctrl) > 2 {
		return nil, fmt.Errorf("xcheck: toggle with %d controls unsupported (0, 1, or 2 only)", len(ctrl))
	}
	var ctrlQ [2]q.Qubit
	for i, c := range ctrl {
		cq, err := b.bind(c)
		if err != nil {
			return nil, err
		}
		ctrlQ[i] = cq
	}
	for _, target := range toggle.Targets.Qubits() {
		tq, err := b.bind(target)
		if err != nil {
			return nil, err
		}
		switch len(ctrl) {
		case 0:
			b.Sim.X(tq)
		case 1:
			b.Sim.CNOT(ctrlQ[0], tq)
		case 2:
			b.Sim.Toffoli(ctrlQ[0], ctrlQ[1], tq)
		}
	}
	return nil, nil
}
