// Package gate implements the signature-gate-driven arithmetic
// decompositions: addition, comparison, multiply-accumulate, unary
// expansion, AND-ancilla management, and table lookup (SPEC_FULL.md §4.2).
package gate

import (
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// SignatureGate is a process-wide immutable gate descriptor: Emulate
// defines its classical semantics, Do its decomposition. The parameter
// schema is a static, per-gate typed Args struct (no reflection, per
// SPEC_FULL.md §9) shared between the two.
type SignatureGate interface {
	Name() string
	Emulate(store op.BitStore, forward bool, args any) error
	Do(controls qubit.QubitIntersection, args any) ([]op.Operation, error)
	Describe(args any) string
}

// Pairable is implemented by gates with a paired inverse gate sharing
// the same args shape (LetAnd/DelAnd), per SPEC_FULL.md §6's optional
// "power ∈ {-1,+1}" contract.
type Pairable interface {
	Paired() SignatureGate
}

// SignatureOperation is an Operation parameterized by a SignatureGate
// plus its typed args.
type SignatureOperation struct {
	Gate SignatureGate
	Args any
}

func NewSignatureOperation(g SignatureGate, args any) *SignatureOperation {
	return &SignatureOperation{Gate: g, Args: args}
}

func (s *SignatureOperation) Do(controls qubit.QubitIntersection) ([]op.Operation, error) {
	return s.Gate.Do(controls, s.Args)
}

func (s *SignatureOperation) MutateState(store op.BitStore, forward bool) error {
	return s.Gate.Emulate(store, forward, s.Args)
}

func (s *SignatureOperation) Inverse() (op.Operation, error) {
	if p, ok := s.Gate.(Pairable); ok {
		return &SignatureOperation{Gate: p.Paired(), Args: s.Args}, nil
	}
	return op.WrapInverse(s)
}

func (s *SignatureOperation) ControlledBy(controls qubit.QubitIntersection) (op.Operation, error) {
	return op.WrapControlled(s, controls)
}

func (s *SignatureOperation) Describe() string { return s.Gate.Describe(s.Args) }
