package egp

import (
	"fmt"
	"maps"
	"slices"
)

// Catalog is the finalized blueprint set for a run. It is read-only once built
// and may be shared by any number of goroutines.
type Catalog struct {
	Output  Blueprint
	Regular [][]Blueprint // regular blueprints per group
	// Terminal holds the pre-instantiated terminal components per group. They are
	// created once per catalog and reused by every expression.
	Terminal [][]*Component
	// WeakMap maps the label of a node looking for a weak binding to the label it
	// looks for.
	WeakMap map[string]string

	ActivitiesByGroup []int // regular + terminal blueprint count per group
	TotalActivities   int
	NumRegulars       int
	NumTerminals      int

	terminalProfiles [][]Vector
	weakOffered      map[string]bool
	nonemptyGroups   []int
}

// NumberActivities assigns consecutive activity ids to every regular blueprint
// and then every terminal blueprint, group-major and position-major, in place.
// It returns the number of ids handed out.
func NumberActivities(regular, terminal [][]Blueprint) int {
	next := 0
	for _, groups := range [][][]Blueprint{regular, terminal} {
		for g := range groups {
			for i := range groups[g] {
				groups[g][i].Activity = next
				next++
			}
		}
	}
	return next
}

// BuildCatalog numbers the blueprints, validates the group structure and
// pre-instantiates one component per terminal blueprint.
//
// regular and terminal must have one entry per group. Every group targeted by a
// binding site (strong or weak, on any blueprint including the output) must
// exist and contain at least one terminal blueprint. No partial catalog is
// returned on error.
func BuildCatalog(output Blueprint, regular, terminal [][]Blueprint, weakMap map[string]string, src Source) (*Catalog, error) {
	if len(regular) != len(terminal) {
		return nil, fmt.Errorf("%w: %d regular, %d terminal", ErrGroupMismatch, len(regular), len(terminal))
	}

	// Work on copies so the caller's slices are not renumbered.
	regular = cloneGroups(regular)
	terminal = cloneGroups(terminal)

	if err := checkTargets(output, regular, terminal); err != nil {
		return nil, err
	}

	c := &Catalog{
		Output:            output,
		Regular:           regular,
		WeakMap:           maps.Clone(weakMap),
		ActivitiesByGroup: make([]int, len(regular)),
	}
	if c.WeakMap == nil {
		c.WeakMap = map[string]string{}
	}

	for g := range regular {
		c.ActivitiesByGroup[g] = len(regular[g]) + len(terminal[g])
		c.NumRegulars += len(regular[g])
		c.NumTerminals += len(terminal[g])
		if len(regular[g]) > 0 {
			c.nonemptyGroups = append(c.nonemptyGroups, g)
		}
	}
	if len(c.nonemptyGroups) == 0 {
		return nil, ErrNoRegularGroups
	}

	c.TotalActivities = NumberActivities(regular, terminal)
	if output.Activity < 0 || output.Activity >= c.TotalActivities {
		return nil, fmt.Errorf("%w: output activity %d not in [0, %d)", ErrActivityRange, output.Activity, c.TotalActivities)
	}

	c.Terminal = make([][]*Component, len(terminal))
	c.terminalProfiles = make([][]Vector, len(terminal))
	for g, bps := range terminal {
		c.Terminal[g] = MakeGroup(bps, ones(len(bps)), c.TotalActivities, src)
		c.terminalProfiles[g] = make([]Vector, len(c.Terminal[g]))
		for i, t := range c.Terminal[g] {
			c.terminalProfiles[g][i] = c.Profile(t)
		}
	}

	c.weakOffered = make(map[string]bool, len(c.WeakMap))
	for _, label := range c.WeakMap {
		c.weakOffered[label] = true
	}

	return c, nil
}

// checkTargets verifies that terminal blueprints declare no sites and that
// every binding site points at an existing group holding at least one terminal
// blueprint.
func checkTargets(output Blueprint, regular, terminal [][]Blueprint) error {
	check := func(bp Blueprint) error {
		for _, sites := range [][]int{bp.Strong, bp.Weak} {
			for _, g := range sites {
				if g < 0 || g >= len(terminal) {
					return fmt.Errorf("%w: blueprint %q targets group %d of %d", ErrUnknownGroup, bp.Label, g, len(terminal))
				}
				if len(terminal[g]) == 0 {
					return fmt.Errorf("%w: blueprint %q targets group %d", ErrMissingTerminal, bp.Label, g)
				}
			}
		}
		return nil
	}

	if err := check(output); err != nil {
		return err
	}
	for g, group := range terminal {
		for _, bp := range group {
			if !bp.IsTerminal() {
				return fmt.Errorf("%w: %q in group %d", ErrTerminalSites, bp.Label, g)
			}
		}
	}
	for _, group := range regular {
		for _, bp := range group {
			if err := check(bp); err != nil {
				return err
			}
		}
	}
	return nil
}

// Profile returns the component's matching profile using the engine bias.
func (c *Catalog) Profile(component *Component) Vector {
	return component.Profile(c.TotalActivities, InputBias)
}

// NumGroups returns the number of groups.
func (c *Catalog) NumGroups() int {
	return len(c.Regular)
}

// NonemptyGroups returns the indices of groups holding at least one regular blueprint.
func (c *Catalog) NonemptyGroups() []int {
	return slices.Clone(c.nonemptyGroups)
}

// randomNonemptyGroup picks one of the nonempty groups uniformly.
func (c *Catalog) randomNonemptyGroup(src Source) int {
	return c.nonemptyGroups[src.Intn(len(c.nonemptyGroups))]
}

// LooksWeak reports whether nodes with label seek weak bindings.
func (c *Catalog) LooksWeak(label string) bool {
	_, ok := c.WeakMap[label]
	return ok
}

// OffersWeak reports whether nodes with label accept weak bindings.
func (c *Catalog) OffersWeak(label string) bool {
	return c.weakOffered[label]
}

func cloneGroups(groups [][]Blueprint) [][]Blueprint {
	out := make([][]Blueprint, len(groups))
	for g, group := range groups {
		out[g] = slices.Clone(group)
	}
	return out
}

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
