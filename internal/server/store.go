package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/coherent-ops/revq/runner"
)

// ProgramRecord is a registered program instance: its catalog name and
// the template used to build a fresh runner.Program per run.
type ProgramRecord struct {
	Name     string
	Template ProgramTemplate
}

// ProgramStore holds registered program records in memory for the
// lifetime of the process (no persistence, per the Non-goals).
type ProgramStore interface {
	SaveProgram(name string) (string, error)
	GetProgram(id string) (*ProgramRecord, error)
}

type programStore struct {
	mu       sync.RWMutex
	programs map[string]*ProgramRecord
}

// NewProgramStore returns an empty in-memory ProgramStore.
func NewProgramStore() ProgramStore {
	return &programStore{programs: make(map[string]*ProgramRecord)}
}

// SaveProgram registers name (which must be in the fixed catalog) and
// returns a fresh uuid.
func (s *programStore) SaveProgram(name string) (string, error) {
	tmpl, ok := catalog[name]
	if !ok {
		return "", fmt.Errorf("unknown program %q", name)
	}
	id := uuid.New().String()
	s.mu.Lock()
	s.programs[id] = &ProgramRecord{Name: name, Template: tmpl}
	s.mu.Unlock()
	return id, nil
}

// GetProgram looks up a previously registered program by id.
func (s *programStore) GetProgram(id string) (*ProgramRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.programs[id]
	if !ok {
		return nil, fmt.Errorf("program %q not found", id)
	}
	return p, nil
}
