package runner

import (
	"fmt"
	"sync"
)

// RunnerFactory creates a new OneShotRunner instance.
type RunnerFactory func() OneShotRunner

// RunnerRegistry manages the registration and creation of pluggable
// one-shot backends (classical sim, optional xcheck).
type RunnerRegistry struct {
	mu        sync.RWMutex
	factories map[string]RunnerFactory
}

var defaultRegistry = NewRunnerRegistry()

// NewRunnerRegistry creates a new, empty registry.
func NewRunnerRegistry() *RunnerRegistry {
	return &RunnerRegistry{factories: make(map[string]RunnerFactory)}
}

// Register registers a runner factory under name. Thread-safe, so it
// may be called from init().
func (r *RunnerRegistry) Register(name string, factory RunnerFactory) error {
	if name == "" {
		return fmt.Errorf("runner name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("runner factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("runner %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on failure.
func (r *RunnerRegistry) MustRegister(name string, factory RunnerFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register runner %q: %v", name, err))
	}
}

// Create instantiates the runner registered under name.
func (r *RunnerRegistry) Create(name string) (OneShotRunner, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown runner: %q", name)
	}
	runner := factory()
	if runner == nil {
		return nil, fmt.Errorf("runner factory for %q returned nil", name)
	}
	return runner, nil
}

// ListRunners returns all registered names.
func (r *RunnerRegistry) ListRunners() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Unregister removes name from the registry, reporting whether it was present.
func (r *RunnerRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.factories[name]
	if exists {
		delete(r.factories, name)
	}
	return exists
}

// RegisterRunner registers factory with the default registry.
func RegisterRunner(name string, factory RunnerFactory) error {
	return defaultRegistry.Register(name, factory)
}

// MustRegisterRunner is like RegisterRunner but panics on failure.
func MustRegisterRunner(name string, factory RunnerFactory) {
	defaultRegistry.MustRegister(name, factory)
}

// CreateRunner creates a runner from the default registry.
func CreateRunner(name string) (OneShotRunner, error) {
	return defaultRegistry.Create(name)
}

// ListRunners lists all runners in the default registry.
func ListRunners() []string {
	return defaultRegistry.ListRunners()
}

// GetDefaultRegistry returns the default registry (advanced use / testing).
func GetDefaultRegistry() *RunnerRegistry {
	return defaultRegistry
}
