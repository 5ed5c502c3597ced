// Package xcheckrunner wires the optional itsubaki/q-backed xcheck
// backend into the runner package's OneShotRunner contract, so a
// pure-Toggle program can be executed through runner.Simulator exactly
// like the classical sim runner (SPEC_FULL.md §8 scenario E7).
package xcheckrunner

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/runner"
	"github.com/coherent-ops/revq/xcheck"
)

// Runner executes a Program against a fresh xcheck.Backend per shot,
// reserving Capacity qubits up front (the backend's pool is not
// reclaimed on Release, so Capacity must cover the program's peak
// live-qubit count).
type Runner struct {
	Capacity int
}

// New returns a Runner whose every shot reserves capacity qubits.
func New(capacity int) *Runner {
	return &Runner{Capacity: capacity}
}

// RunOnce implements runner.OneShotRunner.
func (r *Runner) RunOnce(p runner.Program) (string, error) {
	b := xcheck.New(r.Capacity)
	e := emit.New(b)
	return p(e)
}

// GetBackendInfo implements runner.BackendProvider.
func (r *Runner) GetBackendInfo() runner.BackendInfo {
	return runner.BackendInfo{
		Name:        "xcheck",
		Description: "itsubaki/q statevector cross-check backend",
		Vendor:      "itsubaki/q",
	}
}

// Register installs a "xcheck" factory reserving capacity qubits per
// shot into the default runner registry. Call explicitly (rather than
// from init) since the right capacity is program-specific.
func Register(capacity int) error {
	return runner.RegisterRunner("xcheck", func() runner.OneShotRunner { return New(capacity) })
}
