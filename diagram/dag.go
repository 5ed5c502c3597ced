// Package diagram renders an emitted operation stream as a gate-level
// circuit diagram: a DrawLens records each toggle/measurement/phase-flip
// as it passes through the pipeline into a small DAG of steps, which
// render.go then rasterizes to a PNG.
package diagram

import (
	"fmt"
	"sync/atomic"

	"github.com/coherent-ops/revq/qubit"
)

// NodeID is stable across a single DAG's lifetime.
type NodeID uint64

var idCtr uint64

func nextID() NodeID { return NodeID(atomic.AddUint64(&idCtr, 1)) }

// Node is one drawn step: a gate symbol touching Targets (drawn as
// boxes) and Controls (drawn as dots), connected by a vertical line.
type Node struct {
	ID       NodeID
	Symbol   string
	Targets  []int
	Controls []int

	parents  []NodeID
	children []NodeID
}

// DAG assigns a stable lane (row) to every distinct qubit it meets
// and accumulates Nodes in emission order; Validate freezes it and
// computes a topological depth, mirroring the acyclic-DAG-plus-depth
// shape of a conventional circuit builder but keyed by dynamically
// discovered qubit identity rather than a fixed qubit count.
type DAG struct {
	lanes    map[qubit.Qubit]int
	laneName []string

	nodes map[NodeID]*Node
	order []NodeID
	last  map[int]NodeID

	valid     bool
	topoOrder []*Node
	depth     int
	nodeDepth map[NodeID]int
}

// New returns an empty DAG.
func New() *DAG {
	return &DAG{
		lanes: make(map[qubit.Qubit]int),
		nodes: make(map[NodeID]*Node),
		last:  make(map[int]NodeID),
	}
}

// Lane returns q's row, assigning it a fresh one on first sight.
func (d *DAG) Lane(q qubit.Qubit) int {
	if l, ok := d.lanes[q]; ok {
		return l
	}
	l := len(d.laneName)
	d.lanes[q] = l
	d.laneName = append(d.laneName, q.String())
	return l
}

// Lanes returns the number of distinct qubits seen so far.
func (d *DAG) Lanes() int { return len(d.laneName) }

// LaneName returns the display name assigned to lane i.
func (d *DAG) LaneName(i int) string { return d.laneName[i] }

// AddStep records one drawn gate touching targetQubits (boxed) under
// controlQubits (dotted), in step-emission order.
func (d *DAG) AddStep(symbol string, targetQubits, controlQubits []qubit.Qubit) (*Node, error) {
	if d.valid {
		return nil, fmt.Errorf("diagram: dag already validated")
	}
	targets := make([]int, len(targetQubits))
	for i, q := range targetQubits {
		targets[i] = d.Lane(q)
	}
	controls := make([]int, len(controlQubits))
	for i, q := range controlQubits {
		controls[i] = d.Lane(q)
	}

	n := &Node{ID: nextID(), Symbol: symbol, Targets: targets, Controls: controls}
	d.nodes[n.ID] = n
	d.order = append(d.order, n.ID)

	parentSet := make(map[NodeID]struct{})
	for _, lane := range append(append([]int{}, targets...), controls...) {
		if prev, ok := d.last[lane]; ok {
			if _, seen := parentSet[prev]; !seen {
				parentSet[prev] = struct{}{}
				n.parents = append(n.parents, prev)
				d.nodes[prev].children = append(d.nodes[prev].children, n.ID)
			}
		}
		d.last[lane] = n.ID
	}
	return n, nil
}

// Validate freezes the DAG and computes per-node depth (a step's
// column position left-to-right when rendered).
func (d *DAG) Validate() error {
	if d.valid {
		return nil
	}
	depth := make(map[NodeID]int)
	max := 0
	for _, id := range d.order {
		n := d.nodes[id]
		level := 0
		for _, p := range n.parents {
			if depth[p]+1 > level {
				level = depth[p] + 1
			}
		}
		depth[id] = level
		if level > max {
			max = level
		}
		d.topoOrder = append(d.topoOrder, n)
	}
	d.depth = max + 1
	if len(d.order) == 0 {
		d.depth = 0
	}
	d.nodeDepth = depth
	d.valid = true
	return nil
}

// Steps returns recorded nodes in emission order alongside their
// computed column (step index). Requires Validate.
func (d *DAG) Steps() []*Node { return d.topoOrder }

// Depth returns the number of columns. Requires Validate.
func (d *DAG) Depth() int { return d.depth }

// Column returns the column a node was placed at by Validate.
func (d *DAG) Column(n *Node) int { return d.nodeDepth[n.ID] }
