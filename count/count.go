// Package count provides CountNots, a non-terminal lens that tallies a
// histogram of toggle-gate cost by control-set size without consuming
// the operation stream — it always passes operations through unchanged
// so a sink (typically sim.Sim) still runs underneath it.
package count

import (
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
)

// CountNots tallies, for every OP_TOGGLE reaching it, a rough
// gate-count histogram keyed by the size of its control set. A
// multi-controlled toggle (>1 control) is priced as the ancilla-based
// decomposition would be: two singly-controlled toggles per extra
// target plus one toggle at the full control depth.
type CountNots struct {
	Counts map[int]int
}

// New returns an empty CountNots.
func New() *CountNots { return &CountNots{Counts: make(map[int]int)} }

func separateControls(operation op.Operation) (op.Operation, qubit.QubitIntersection) {
	if c, ok := operation.(*op.ControlledOperation); ok {
		return c.Inner, c.Controls
	}
	return operation, qubit.Empty
}

// Modify implements emit.Lens.
func (c *CountNots) Modify(operation op.Operation) ([]op.Operation, error) {
	inner, controls := separateControls(operation)
	if t, ok := inner.(*op.ToggleOperation); ok {
		n := len(t.Targets.Qubits())
		switch {
		case controls.Len() > 1:
			c.Counts[1] += 2 * (n - 1)
			c.Counts[controls.Len()]++
		default:
			c.Counts[controls.Len()] += n
		}
	}
	return []op.Operation{operation}, nil
}
