// Package runner generalizes the teacher's concurrent shot-execution
// model from a fixed itsubaki/q circuit to any Program: a fresh
// *emit.Emitter/backend pair is instantiated per shot, so the
// single-Emitter concurrency restriction (SPEC_FULL.md §5) is
// respected even though many shots run across goroutines.
package runner

import (
	"github.com/coherent-ops/revq/emit"
)

// Program runs one shot of a circuit against e and returns a
// classical result key (typically a bitstring) for the histogram.
type Program func(e *emit.Emitter) (string, error)

// OneShotRunner executes a Program once against a freshly constructed
// backend (a sim.Sim or an xcheck.Backend) and returns its result key.
type OneShotRunner interface {
	RunOnce(p Program) (string, error)
}

// BackendInfo provides metadata about a one-shot runner backend.
type BackendInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Vendor      string `json:"vendor"`
}

// BackendProvider is implemented by runners that can describe
// themselves (the classical sim runner and the xcheck runner both do).
type BackendProvider interface {
	GetBackendInfo() BackendInfo
}

// GetBackendInfo safely fetches backend info if the runner provides it.
func GetBackendInfo(r OneShotRunner) *BackendInfo {
	if p, ok := r.(BackendProvider); ok {
		info := p.GetBackendInfo()
		return &info
	}
	return nil
}
