package emit

import (
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// CaptureLens collects every operation it receives into an ordered
// list, then forwards it unchanged (Modify is identity).
type CaptureLens struct {
	Ops []op.Operation
}

func (c *CaptureLens) Modify(o op.Operation) ([]op.Operation, error) {
	c.Ops = append(c.Ops, o)
	return []op.Operation{o}, nil
}

// bufferLens collects operations but does NOT forward them — used by
// InvertLens, which must hold the whole scope before it can flush
// inverses in reverse order.
type bufferLens struct {
	ops []op.Operation
}

func (b *bufferLens) Modify(o op.Operation) ([]op.Operation, error) {
	b.ops = append(b.ops, o)
	return nil, nil
}

// ConditionLens wraps every received operation with ControlledBy(Controls)
// and forwards the result.
type ConditionLens struct {
	Controls qubit.QubitIntersection
}

func (c *ConditionLens) Modify(o op.Operation) ([]op.Operation, error) {
	wrapped, err := o.ControlledBy(c.Controls)
	if err != nil {
		return nil, err
	}
	return []op.Operation{wrapped}, nil
}
