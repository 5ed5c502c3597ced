package emit

import (
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
)

// Body is a scoped emission body. Returning a non-nil error marks the
// scope as aborted: the scope guard's closing emission (release,
// un-pad, flushed inverses) is suppressed, matching the host language's
// "suppress cleanup on exceptional exit" rule (SPEC_FULL.md §9). This is
// Go's checked-error restatement of that rule — no panic/recover is
// needed because the exceptional path is already an explicit value.
type Body func(*Emitter) error

// WithLens installs lens for the duration of body, generalizing
// WithCapture/WithCondition to any Lens — used by downstream packages
// (e.g. diagram.DrawLens) that want to observe a run without owning
// the Emitter's construction.
func (e *Emitter) WithLens(lens Lens, body Body) error {
	e.push(lens)
	err := body(e)
	e.pop()
	return err
}

// WithCapture installs a CaptureLens for the duration of body and
// returns everything it collected. Captured operations are still
// forwarded to the rest of the stack (CaptureLens.Modify is identity).
func (e *Emitter) WithCapture(body Body) ([]op.Operation, error) {
	cap := &CaptureLens{}
	e.push(cap)
	err := body(e)
	e.pop()
	if err != nil {
		return nil, err
	}
	return cap.Ops, nil
}

// WithInvert installs an inverting scope: operations emitted within
// body are buffered, not forwarded, and on successful exit are
// re-emitted below this scope in reverse order, each replaced by its
// inverse. On abort, the buffer is discarded (no compensating emission).
func (e *Emitter) WithInvert(body Body) error {
	buf := &bufferLens{}
	e.push(buf)
	err := body(e)
	e.pop()
	if err != nil {
		return err
	}
	for i := len(buf.ops) - 1; i >= 0; i-- {
		inv, ierr := buf.ops[i].Inverse()
		if ierr != nil {
			return ierr
		}
		if err := e.Emit(inv); err != nil {
			return err
		}
	}
	return nil
}

// WithCondition installs a ConditionLens for the duration of body,
// wrapping every operation body emits with ControlledBy(controls).
func (e *Emitter) WithCondition(controls qubit.QubitIntersection, body Body) error {
	e.push(&ConditionLens{Controls: controls})
	err := body(e)
	e.pop()
	return err
}

// WithAlloc allocates reg, runs body, and releases reg on normal exit.
// On abort (body returns a non-nil error), the release is suppressed so
// the failure state remains inspectable, per the cancellation rule.
func (e *Emitter) WithAlloc(reg qureg.Qureg, xBasis bool, body Body) error {
	if err := e.Emit(&op.AllocQuregOperation{Reg: reg, XBasis: xBasis}); err != nil {
		return err
	}
	if err := body(e); err != nil {
		return err
	}
	return e.Emit(&op.ReleaseQuregOperation{Reg: reg, XBasis: xBasis})
}

// WithPad is the scoped padded-register construct: if base is shorter
// than minLen, it allocates a fresh register of the missing length,
// concatenates it onto base, and releases the pad on normal exit. If
// base is already long enough, body runs directly over base with no
// allocation at all (the pad/release matching invariant).
func (e *Emitter) WithPad(base qureg.Qureg, minLen int, body func(*Emitter, qureg.Qureg) error) error {
	if base.Len() >= minLen {
		return body(e, base)
	}
	pad := qureg.NewNamed("pad", minLen-base.Len())
	padded := qureg.Concat(base, pad)
	return e.WithAlloc(pad, false, func(e *Emitter) error {
		return body(e, padded)
	})
}
