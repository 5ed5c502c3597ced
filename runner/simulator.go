package runner

import (
	"runtime"

	"github.com/coherent-ops/revq/internal/logger"
	"github.com/rs/zerolog"
)

// SimulatorOptions parameterizes a Simulator.
type SimulatorOptions struct {
	Shots   int
	Workers int // 0 => NumCPU
	Runner  OneShotRunner
}

// Simulator runs a Program for a given number of shots across a pool
// of worker goroutines, accumulating a result histogram. Each shot
// constructs its own Emitter/backend pair via Runner, so the
// single-Emitter concurrency restriction holds across shots run on
// different goroutines.
type Simulator struct {
	Shots   int
	Workers int
	runner  OneShotRunner

	log logger.Logger
}

// NewSimulator creates a Simulator, defaulting Shots to 1024 and
// Workers to runtime.NumCPU() (capped at Shots) when unset.
func NewSimulator(options SimulatorOptions) *Simulator {
	shots := options.Shots
	if shots <= 0 {
		shots = 1024
	}
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > shots {
		workers = shots
	}

	return &Simulator{
		Shots: shots, Workers: workers, runner: options.Runner,
		log: *logger.NewLogger(logger.LoggerOptions{Debug: false}),
	}
}

// NewSimulatorWithRunner looks up name in the default registry and
// builds a Simulator around it.
func NewSimulatorWithRunner(name string, options SimulatorOptions) (*Simulator, error) {
	r, err := CreateRunner(name)
	if err != nil {
		return nil, err
	}
	options.Runner = r
	return NewSimulator(options), nil
}

// SetVerbose toggles debug-level logging.
func (s *Simulator) SetVerbose(verbose bool) {
	if verbose {
		s.log.Logger = s.log.Logger.Level(zerolog.DebugLevel)
	} else {
		s.log.Logger = s.log.Logger.Level(zerolog.InfoLevel)
	}
}

// Run defaults to RunParallelStatic.
func (s *Simulator) Run(p Program) (map[string]int, error) {
	return s.RunParallelStatic(p)
}
