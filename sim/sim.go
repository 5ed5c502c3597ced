// Package sim implements the terminal classical simulator: a BitStore
// over real Go bools, installed as the bottom lens of an emit.Emitter.
// Leaf operations (allocation, release, measurement, toggle, phase
// flip, classical phase-fixup conditions) are dispatched directly;
// everything else is handed back unchanged so the emitter decomposes it
// one level and retries (SPEC_FULL.md §4.5).
package sim

import (
	"fmt"
	"math/rand"

	"github.com/coherent-ops/revq/gate"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// Option configures a Sim at construction.
type Option func(*Sim)

// EnforceReleaseAtZero makes ReleaseQuregOperation assert every
// released qubit reads 0 unless the operation is marked Dirty. Default
// true, matching the original simulator's default.
func EnforceReleaseAtZero(enforce bool) Option {
	return func(s *Sim) { s.enforceReleaseAtZero = enforce }
}

// PhaseFixupBias pins MeasureXForPhaseKickOperation's classical result
// to a fixed bit instead of a random one, making DelAnd/DelUnary
// uncomputation deterministic for tests (SPEC_FULL.md §8 scenario E5).
func PhaseFixupBias(bias bool) Option {
	return func(s *Sim) { s.phaseFixupBias = &bias }
}

// EmulateAdditions short-circuits PlusEqualGate and IfLessThanThenGate
// (and their inverses) straight through Emulate instead of decomposing
// them into individual toggles — the same optimization the original
// simulator offers, useful for large arithmetic circuits where only the
// final classical answer matters.
func EmulateAdditions(emulate bool) Option {
	return func(s *Sim) { s.emulateAdditions = emulate }
}

// Sim is a classical bit-store simulator: it tracks a boolean per live
// qubit and applies each operation's MutateState directly rather than
// simulating amplitudes.
type Sim struct {
	state map[qubit.Qubit]bool

	enforceReleaseAtZero bool
	phaseFixupBias       *bool
	emulateAdditions     bool
}

// New returns a Sim with no qubits allocated yet.
func New(opts ...Option) *Sim {
	s := &Sim{state: make(map[qubit.Qubit]bool), enforceReleaseAtZero: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the live qubit-to-value map, for tests
// that want to inspect state without racing a running Emitter.
func (s *Sim) Snapshot() map[qubit.Qubit]bool {
	out := make(map[qubit.Qubit]bool, len(s.state))
	for q, v := range s.state {
		out[q] = v
	}
	return out
}

// ReadQubit, WriteQubit, RandomBit implement op.BitStore.
func (s *Sim) ReadQubit(q qubit.Qubit) bool   { return s.state[q] }
func (s *Sim) WriteQubit(q qubit.Qubit, v bool) { s.state[q] = v }
func (s *Sim) RandomBit() bool                 { return rand.Float64() < 0.5 }

// ApplyOpViaEmulation runs an operation's classical semantics directly,
// bypassing decomposition. Named to match the original simulator's
// apply_op_via_emulation; in Go it reduces to a single MutateState call
// because MutateState already threads control-gating and inversion
// through the operation's own wrapper layers, so there is no separate
// resolve_location/overwrite_location tree-walk to replicate.
func (s *Sim) ApplyOpViaEmulation(o op.Operation) error {
	return o.MutateState(s, true)
}

// leaf strips ControlledOperation/InverseOperation wrapper layers to
// find the underlying concrete operation type, for dispatch purposes
// only; the original (possibly wrapped) operation is still what gets
// MutateState called on it, so control-gating and inversion still apply.
func leaf(o op.Operation) op.Operation {
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

func isEmulatableGate(o op.Operation) bool {
	so, ok := o.(*gate.SignatureOperation)
	if !ok {
		return false
	}
	return so.Gate == gate.PlusEqual || so.Gate == gate.IfLessThanThen
}

// Modify implements emit.Lens.
func (s *Sim) Modify(operation op.Operation) ([]op.Operation, error) {
	switch o := operation.(type) {
	case *op.AllocQuregOperation:
		return nil, s.alloc(o)
	case *op.ReleaseQuregOperation:
		return nil, s.release(o)
	case *op.MeasureOperation:
		return nil, s.measure(o)
	case *op.MeasureXForPhaseKickOperation:
		return nil, s.measureXForPhaseKick(o)
	}

	switch leaf(operation).(type) {
	case *op.ToggleOperation, *op.PhaseFlipOperation, *op.ClassicalConditionOperation:
		return nil, operation.MutateState(s, true)
	}

	if s.emulateAdditions && isEmulatableGate(leaf(operation)) {
		return nil, s.ApplyOpViaEmulation(operation)
	}

	return []op.Operation{operation}, nil
}

func (s *Sim) alloc(a *op.AllocQuregOperation) error {
	for _, q := range a.Reg.Qubits() {
		if _, live := s.state[q]; live {
			return fmt.Errorf("alloc: qubit %s already live", q)
		}
		if a.XBasis {
			s.WriteQubit(q, s.RandomBit())
		} else {
			s.WriteQubit(q, false)
		}
	}
	return nil
}

func (s *Sim) release(r *op.ReleaseQuregOperation) error {
	for _, q := range r.Reg.Qubits() {
		if s.enforceReleaseAtZero && !r.Dirty && s.ReadQubit(q) {
			return fmt.Errorf("release: qubit %s failed to uncompute to zero", q)
		}
		delete(s.state, q)
	}
	return nil
}

func (s *Sim) measure(m *op.MeasureOperation) error {
	raw := make([]bool, m.Targets.Len())
	for i, q := range m.Targets.Qubits() {
		raw[i] = s.ReadQubit(q)
	}
	m.Raw = raw
	if m.Interpret != nil {
		m.Result = m.Interpret(raw)
	}
	if m.Reset {
		for _, q := range m.Targets.Qubits() {
			s.WriteQubit(q, false)
		}
	}
	return nil
}

func (s *Sim) measureXForPhaseKick(m *op.MeasureXForPhaseKickOperation) error {
	result := s.RandomBit()
	if s.phaseFixupBias != nil {
		result = *s.phaseFixupBias
	}
	m.Result = result
	s.WriteQubit(m.Target, false)
	return nil
}
