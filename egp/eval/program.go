// Package eval runs an expressed phenotype as an arithmetic expression tree.
//
// Each node's label names an Operator, or an input variable for terminals.
// Strong children are the operator's arguments in binding order; weak edges
// are ignored.
package eval

import (
	"fmt"

	"github.com/baldhumanity/egp-go/egp"
)

// step is one node of a compiled program.
type step struct {
	op       Operator
	variable int // index into the inputs, or -1
	children []egp.NodeID
}

// Program is a phenotype prepared for repeated evaluation.
type Program struct {
	Variables []string
	// EvalOrder lists node ids so that every node comes after its children.
	EvalOrder []egp.NodeID
	steps     []step
	root      egp.NodeID
}

// Compile resolves every node label of p against ops and variables. Labels
// found in variables read the matching input; all others must be in ops.
func Compile(p *egp.Phenotype, ops map[string]Operator, variables []string) (*Program, error) {
	if p.NodeCount() == 0 {
		return nil, fmt.Errorf("cannot compile an empty phenotype")
	}

	varIndex := make(map[string]int, len(variables))
	for i, v := range variables {
		varIndex[v] = i
	}

	steps := make([]step, p.NodeCount())
	for id, node := range p.Nodes() {
		children := p.Children(egp.NodeID(id))
		if i, ok := varIndex[node.Label]; ok {
			if len(children) > 0 {
				return nil, fmt.Errorf("variable %q at node %d has %d children", node.Label, id, len(children))
			}
			steps[id] = step{variable: i}
			continue
		}
		op, err := Lookup(ops, node.Label)
		if err != nil {
			return nil, fmt.Errorf("failed to compile node %d: %w", id, err)
		}
		steps[id] = step{op: op, variable: -1, children: children}
	}

	// Expression numbers nodes breadth-first, so a child always has a larger
	// id than its parent and descending id order is a valid evaluation order.
	order := make([]egp.NodeID, 0, len(steps))
	for id := len(steps) - 1; id >= 0; id-- {
		for _, child := range steps[id].children {
			if child <= egp.NodeID(id) {
				return nil, fmt.Errorf("node %d has child %d that is not deeper in the tree", id, child)
			}
		}
		order = append(order, egp.NodeID(id))
	}

	return &Program{
		Variables: variables,
		EvalOrder: order,
		steps:     steps,
		root:      p.Root(),
	}, nil
}

// Evaluate computes the root value for one assignment of the variables.
func (prog *Program) Evaluate(inputs []float64) (float64, error) {
	if len(inputs) != len(prog.Variables) {
		return 0, fmt.Errorf("mismatch between input count (%d) and program variables (%d)", len(inputs), len(prog.Variables))
	}

	values := make([]float64, len(prog.steps))
	var args []float64
	for _, id := range prog.EvalOrder {
		s := prog.steps[id]
		if s.variable >= 0 {
			values[id] = inputs[s.variable]
			continue
		}
		args = args[:0]
		for _, child := range s.children {
			args = append(args, values[child])
		}
		values[id] = s.op(args)
	}
	return values[prog.root], nil
}
