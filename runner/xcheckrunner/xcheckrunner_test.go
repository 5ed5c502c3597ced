package xcheckrunner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/runner"
)

func TestRunOnceExecutesAToggleProgram(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := New(2)
	key, err := r.RunOnce(func(e *emit.Emitter) (string, error) {
		reg := qureg.NewNamed("t", 1)
		var result string
		err := e.WithAlloc(reg, false, func(e *emit.Emitter) error {
			if err := e.Emit(op.NewToggle(reg)); err != nil {
				return err
			}
			m := &op.MeasureOperation{Targets: reg, Reset: true}
			if err := e.Emit(m); err != nil {
				return err
			}
			result = fmt.Sprintf("%v", m.Raw[0])
			return nil
		})
		return result, err
	})
	require.NoError(err)
	assert.Equal("true", key, "a toggle on a fresh |0> qubit must measure to 1")
}

func TestGetBackendInfoNamesItsubakiQ(t *testing.T) {
	assert := assert.New(t)

	info := New(1).GetBackendInfo()
	assert.Equal("xcheck", info.Name)
}

func TestRegisterInstallsUnderXcheckName(t *testing.T) {
	require := require.New(t)

	reg := runner.GetDefaultRegistry()
	if !contains(reg.ListRunners(), "xcheck") {
		require.NoError(Register(4))
	}
	_, err := reg.Create("xcheck")
	require.NoError(err)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
