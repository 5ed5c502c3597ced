package op

import (
	"fmt"

	"github.com/coherent-ops/revq/qubit"
)

// ClassicalConditionOperation applies Then only if Measurement's
// classical Result is true. Measurement must already have run (and so
// have Result populated) by the time this operation's MutateState
// executes — the simulator processes operations in emission order over
// a shared BitStore, so sequencing within a single decomposition
// guarantees this. This is how DelAnd and DelUnary apply a phase fixup
// conditioned on a mid-circuit measurement outcome without the
// decomposition itself depending on runtime state.
type ClassicalConditionOperation struct {
	Measurement *MeasureXForPhaseKickOperation
	Then        Operation
}

func (c *ClassicalConditionOperation) Do(controls qubit.QubitIntersection) ([]Operation, error) {
	return nil, ErrFundamental
}

func (c *ClassicalConditionOperation) MutateState(store BitStore, forward bool) error {
	if !c.Measurement.Result {
		return nil
	}
	return c.Then.MutateState(store, forward)
}

func (c *ClassicalConditionOperation) Inverse() (Operation, error) {
	return nil, fmt.Errorf("%w: ClassicalConditionOperation", ErrNotInvertible)
}

func (c *ClassicalConditionOperation) ControlledBy(controls qubit.QubitIntersection) (Operation, error) {
	then, err := c.Then.ControlledBy(controls)
	if err != nil {
		return nil, err
	}
	return &ClassicalConditionOperation{Measurement: c.Measurement, Then: then}, nil
}

func (c *ClassicalConditionOperation) Describe() string {
	return fmt.Sprintf("if(%s) %s", c.Measurement.Describe(), c.Then.Describe())
}
