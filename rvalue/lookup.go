package rvalue

import (
	"fmt"

	"github.com/coherent-ops/revq/op"
	"github.com/coherent-ops/revq/qubit"
	"github.com/coherent-ops/revq/qureg"
	"github.com/coherent-ops/revq/quint"
)

// LookupTable is a read-only classical table of ints, indexed by the
// value of an address quint.
type LookupTable struct {
	Values []int
}

func NewLookupTable(values ...int) *LookupTable { return &LookupTable{Values: values} }

// Lookup is the r-value form: it resolves, via the simulator, to
// Table.Values[Address]. Out of range addresses read 0, matching the
// classical table's defined domain.
type Lookup struct {
	Table   *LookupTable
	Address quint.Quint
}

func NewLookup(table *LookupTable, address quint.Quint) *Lookup {
	return &Lookup{Table: table, Address: address}
}

func (l *Lookup) PermutationRegisters() []qureg.Qureg { return []qureg.Qureg{l.Address.Reg} }
func (l *Lookup) ExistingStorageLocation() (op.Location, bool) { return nil, false }
func (l *Lookup) MakeStorageLocation(name string) op.Location {
	width := 0
	for _, v := range l.Table.Values {
		for v>>uint(width) != 0 {
			width++
		}
	}
	if width == 0 {
		width = 1
	}
	return quint.New(qureg.NewNamed(name, width))
}
func (l *Lookup) Resolve(store op.BitStore) int {
	addr := l.Address.Resolve(store.ReadQubit)
	if addr < 0 || addr >= len(l.Table.Values) {
		return 0
	}
	return l.Table.Values[addr]
}
func (l *Lookup) InitStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("lookup r-value binds via XorLookupOperation, not Init/DelStorageLocation")
}
func (l *Lookup) DelStorageLocation(loc op.Location, controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("lookup r-value binds via XorLookupOperation, not Init/DelStorageLocation")
}
func (l *Lookup) PhaseFlipIf(controls qubit.QubitIntersection) ([]op.Operation, error) {
	return nil, fmt.Errorf("phase_flip_if is only defined for bool-valued r-values")
}
