package emit

import "github.com/coherent-ops/revq/op"

// recorder is a terminal sink that accepts and records every operation
// without forwarding it further (unlike CaptureLens, which is meant to
// sit above other lenses and pass operations through unchanged).
type recorder struct {
	ops []op.Operation
}

func (r *recorder) Modify(o op.Operation) ([]op.Operation, error) {
	r.ops = append(r.ops, o)
	return nil, nil
}

// Expand runs body against a fresh, throwaway Emitter backed by a
// recording terminal sink and returns everything it emitted. Gate
// decompositions that need the scope-guard machinery (Hold, WithAlloc,
// WithPad) to build a one-level expansion — but must return a plain
// []op.Operation from Do rather than perform it against the real
// pipeline — use this to borrow that machinery locally.
func Expand(body func(*Emitter) error) ([]op.Operation, error) {
	rec := &recorder{}
	e := New(rec)
	if err := body(e); err != nil {
		return nil, err
	}
	return rec.ops, nil
}
