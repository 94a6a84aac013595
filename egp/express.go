package egp

import (
	"math"
	"slices"
)

// ExpressionStats counts how the binding sites of one expression were resolved.
type ExpressionStats struct {
	RegularBindings  int // strong sites bound to a chromosome regular
	TerminalBindings int // strong sites bound to a shared terminal
	WeakResolved     int
	WeakUnresolved   int
}

// regularKey identifies a regular component of the chromosome being expressed.
type regularKey struct {
	group int
	index int
}

// expression holds the working state of a single Express call.
type expression struct {
	catalog    *Catalog
	chromosome *Chromosome
	phenotype  *Phenotype
	stats      ExpressionStats

	queue        []NodeID
	consumed     map[regularKey]bool
	weakLooking  map[NodeID]bool
	weakOffering map[NodeID]bool

	// regularProfiles caches the profiles of each chromosome group, computed on
	// first use.
	regularProfiles [][]Vector
}

// Express develops chromosome into a phenotype graph.
//
// The strong pass is breadth-first from the output node: every strong site of a
// dequeued node is bound to the nearest unconsumed regular of its target group,
// or to the nearest terminal of that group when the terminal is strictly closer
// or no regular is left. Regulars are consumed once per expression; terminals
// are unlimited. The weak pass then binds each weak site of every weak-looking
// node to the nearest weak-offering node.
//
// Express does not modify its inputs and draws no randomness, so identical
// inputs give identical graphs.
func Express(c *Catalog, ch *Chromosome) *Phenotype {
	p, _ := ExpressWithStats(c, ch)
	return p
}

// ExpressWithStats is Express that also reports how sites were resolved.
func ExpressWithStats(c *Catalog, ch *Chromosome) (*Phenotype, ExpressionStats) {
	e := &expression{
		catalog:         c,
		chromosome:      ch,
		phenotype:       NewPhenotype(1 + ch.NumRegulars() + c.NumTerminals),
		consumed:        make(map[regularKey]bool),
		weakLooking:     make(map[NodeID]bool),
		weakOffering:    make(map[NodeID]bool),
		regularProfiles: make([][]Vector, len(ch.Regular)),
	}

	root := e.phenotype.AddNode(expressed(ch.Output, Origin{Kind: OriginOutput}))
	e.queue = append(e.queue, root)

	for len(e.queue) > 0 {
		node := e.queue[0]
		e.queue = e.queue[1:]
		e.satisfy(node)
	}

	// Sorted so that weak resolution does not depend on map iteration order.
	looking := sortedNodes(e.weakLooking)
	offering := sortedNodes(e.weakOffering)
	for _, node := range looking {
		e.satisfyWeak(node, offering)
	}

	return e.phenotype, e.stats
}

func expressed(c *Component, origin Origin) Node {
	return Node{Label: c.Label, Activity: c.Activity, Origin: origin}
}

// component resolves a node's origin back to the component it was expressed from.
func (e *expression) component(node NodeID) *Component {
	origin := e.phenotype.Node(node).Origin
	switch origin.Kind {
	case OriginRegular:
		return e.chromosome.Regular[origin.Group][origin.Index]
	case OriginTerminal:
		return e.catalog.Terminal[origin.Group][origin.Index]
	default:
		return e.chromosome.Output
	}
}

func (e *expression) profilesOf(group int) []Vector {
	if e.regularProfiles[group] == nil {
		profiles := make([]Vector, len(e.chromosome.Regular[group]))
		for i, comp := range e.chromosome.Regular[group] {
			profiles[i] = e.catalog.Profile(comp)
		}
		e.regularProfiles[group] = profiles
	}
	return e.regularProfiles[group]
}

// satisfy records the node's weak roles and binds each of its strong sites,
// enqueueing the new children.
func (e *expression) satisfy(node NodeID) {
	comp := e.component(node)

	if e.catalog.LooksWeak(comp.Label) {
		e.weakLooking[node] = true
	}
	if e.catalog.OffersWeak(comp.Label) {
		e.weakOffering[node] = true
	}

	for ordinal, site := range comp.Strong {
		group := comp.StrongGroup[ordinal]

		regular, regularDistance, regularFound := nearest(site, e.profilesOf(group), func(i int) bool {
			return !e.consumed[regularKey{group, i}]
		})
		terminal, terminalDistance, terminalFound := nearest(site, e.catalog.terminalProfiles[group], nil)
		if !terminalFound {
			// BuildCatalog guarantees a terminal in every targeted group.
			panic("egp: no terminal in targeted group")
		}

		var child NodeID
		if regularFound && regularDistance <= terminalDistance {
			child = e.phenotype.AddNode(expressed(e.chromosome.Regular[group][regular], Origin{Kind: OriginRegular, Group: group, Index: regular}))
			e.consumed[regularKey{group, regular}] = true
			e.stats.RegularBindings++
		} else {
			child = e.phenotype.AddNode(expressed(e.catalog.Terminal[group][terminal], Origin{Kind: OriginTerminal, Group: group, Index: terminal}))
			e.stats.TerminalBindings++
		}

		e.phenotype.AddEdge(node, child, Binding{Kind: Strong, Ordinal: ordinal})
		e.queue = append(e.queue, child)
	}
}

// satisfyWeak binds every weak site of node to the closest offering node.
// Offering nodes may be bound any number of times. With no offering node the
// site stays unbound.
//
// TODO: restrict candidates to nodes labelled WeakMap[label] once catalogs
// declare more than one offering label.
func (e *expression) satisfyWeak(node NodeID, offering []NodeID) {
	comp := e.component(node)
	if len(comp.Weak) == 0 {
		return
	}

	profiles := make([]Vector, len(offering))
	for i, o := range offering {
		profiles[i] = e.catalog.Profile(e.component(o))
	}

	for ordinal, site := range comp.Weak {
		best, _, found := nearest(site, profiles, nil)
		if !found {
			e.stats.WeakUnresolved++
			continue
		}
		e.phenotype.AddEdge(node, offering[best], Binding{Kind: Weak, Ordinal: ordinal})
		e.stats.WeakResolved++
	}
}

// nearest returns the index of the eligible profile closest to site. Candidates
// are scanned in index order and a candidate at distance <= the best so far
// replaces it, so among equal distances the last one wins. A nil eligible
// accepts every candidate.
func nearest(site Vector, profiles []Vector, eligible func(int) bool) (int, float64, bool) {
	best, bestDistance, found := 0, math.Inf(1), false
	for i, profile := range profiles {
		if eligible != nil && !eligible(i) {
			continue
		}
		if d := Distance(site, profile); d <= bestDistance {
			best, bestDistance, found = i, d, true
		}
	}
	return best, bestDistance, found
}

func sortedNodes(set map[NodeID]bool) []NodeID {
	nodes := make([]NodeID, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}
