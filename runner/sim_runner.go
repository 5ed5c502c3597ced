package runner

import (
	"github.com/coherent-ops/revq/emit"
	"github.com/coherent-ops/revq/sim"
)

// SimRunner executes a Program against a fresh sim.Sim per shot. It is
// registered in the default registry under the name "sim".
type SimRunner struct {
	Opts []sim.Option
}

// NewSimRunner returns a SimRunner that constructs each shot's Sim with opts.
func NewSimRunner(opts ...sim.Option) *SimRunner {
	return &SimRunner{Opts: opts}
}

// RunOnce implements OneShotRunner.
func (r *SimRunner) RunOnce(p Program) (string, error) {
	s := sim.New(r.Opts...)
	e := emit.New(s)
	return p(e)
}

// GetBackendInfo implements BackendProvider.
func (r *SimRunner) GetBackendInfo() BackendInfo {
	return BackendInfo{
		Name:        "sim",
		Description: "classical bit-store simulator",
		Vendor:      "revq",
	}
}

func init() {
	MustRegisterRunner("sim", func() OneShotRunner { return NewSimRunner() })
}
