package egp

import (
	"fmt"
	"strings"
)

// NodeID identifies a node of a Phenotype. Ids are assigned in creation order
// starting at 0, so the output node is always 0.
type NodeID int

// OriginKind says where an expressed node's component lives.
type OriginKind int

const (
	OriginOutput OriginKind = iota
	OriginRegular
	OriginTerminal
)

// String returns the name of the origin kind.
func (k OriginKind) String() string {
	switch k {
	case OriginOutput:
		return "output"
	case OriginRegular:
		return "regular"
	case OriginTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("OriginKind(%d)", int(k))
	}
}

// Origin is a tagged index into either the chromosome (output, regular) or the
// catalog's shared terminal pool.
type Origin struct {
	Kind  OriginKind
	Group int
	Index int
}

// String formats the origin as Output, Regular(g, i) or Terminal(g, i).
func (o Origin) String() string {
	switch o.Kind {
	case OriginRegular:
		return fmt.Sprintf("Regular(%d, %d)", o.Group, o.Index)
	case OriginTerminal:
		return fmt.Sprintf("Terminal(%d, %d)", o.Group, o.Index)
	default:
		return "Output"
	}
}

// BindingKind distinguishes strong edges from weak ones.
type BindingKind int

const (
	Strong BindingKind = iota
	Weak
)

// Binding labels an edge with its kind and the ordinal of the binding site on
// the parent that produced it.
type Binding struct {
	Kind    BindingKind
	Ordinal int
}

// DecrementStrong returns a strong binding with its ordinal reduced by one.
// Weak bindings are returned unchanged.
func (b Binding) DecrementStrong() Binding {
	if b.Kind == Strong {
		b.Ordinal--
	}
	return b
}

// String formats the binding as "n" or "n (weak)".
func (b Binding) String() string {
	if b.Kind == Weak {
		return fmt.Sprintf("%d (weak)", b.Ordinal)
	}
	return fmt.Sprintf("%d", b.Ordinal)
}

// Node is an expressed component.
type Node struct {
	Label    string
	Activity int
	Origin   Origin
}

// Edge is a directed binding from a parent node to the node bound by one of its sites.
type Edge struct {
	From    NodeID
	To      NodeID
	Binding Binding
}

// Phenotype is the directed graph produced by expression. Nodes and edges are
// kept in creation order.
type Phenotype struct {
	nodes []Node
	edges []Edge
	out   [][]int // edge indices per source node
}

// NewPhenotype returns an empty phenotype with room for about n nodes.
func NewPhenotype(n int) *Phenotype {
	return &Phenotype{
		nodes: make([]Node, 0, n),
		edges: make([]Edge, 0, n),
		out:   make([][]int, 0, n),
	}
}

// AddNode appends a node and returns its id.
func (p *Phenotype) AddNode(n Node) NodeID {
	p.nodes = append(p.nodes, n)
	p.out = append(p.out, nil)
	return NodeID(len(p.nodes) - 1)
}

// AddEdge appends an edge from -> to.
func (p *Phenotype) AddEdge(from, to NodeID, b Binding) {
	p.edges = append(p.edges, Edge{From: from, To: to, Binding: b})
	p.out[from] = append(p.out[from], len(p.edges)-1)
}

// NodeCount returns the number of nodes.
func (p *Phenotype) NodeCount() int { return len(p.nodes) }

// EdgeCount returns the number of edges.
func (p *Phenotype) EdgeCount() int { return len(p.edges) }

// Node returns the node with the given id.
func (p *Phenotype) Node(id NodeID) Node { return p.nodes[id] }

// Nodes returns all nodes in id order.
func (p *Phenotype) Nodes() []Node { return p.nodes }

// Edges returns all edges in creation order.
func (p *Phenotype) Edges() []Edge { return p.edges }

// Root returns the id of the output node.
func (p *Phenotype) Root() NodeID { return 0 }

// OutEdges returns the edges leaving id, in creation order.
func (p *Phenotype) OutEdges(id NodeID) []Edge {
	edges := make([]Edge, len(p.out[id]))
	for i, e := range p.out[id] {
		edges[i] = p.edges[e]
	}
	return edges
}

// Children returns the strong children of id ordered by site ordinal.
func (p *Phenotype) Children(id NodeID) []NodeID {
	var children []NodeID
	for _, e := range p.out[id] {
		if p.edges[e].Binding.Kind == Strong {
			children = append(children, p.edges[e].To)
		}
	}
	return children
}

// DOT renders the phenotype in Graphviz dot syntax. Weak edges are dashed.
func (p *Phenotype) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph phenotype {\n")
	for id, n := range p.nodes {
		fmt.Fprintf(&sb, "  n%d [label=%q];\n", id, n.Label)
	}
	for _, e := range p.edges {
		style := ""
		if e.Binding.Kind == Weak {
			style = ", style=dashed"
		}
		fmt.Fprintf(&sb, "  n%d -> n%d [label=%q%s];\n", e.From, e.To, e.Binding.String(), style)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// String returns a one-line summary.
func (p *Phenotype) String() string {
	return fmt.Sprintf("Phenotype(nodes: %d, edges: %d)", len(p.nodes), len(p.edges))
}
