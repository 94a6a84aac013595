package egp

import (
	"fmt"
	"slices"
)

// InputBias blends a component's own identity with the average of what it
// expects to bind to when computing its profile.
const InputBias = 0.5

// Component is an instantiated Blueprint carrying binding-site geometry.
// Every vector has Catalog.TotalActivities entries.
type Component struct {
	Activity    int
	Label       string
	Strong      []Vector // one vector per strong binding site
	StrongGroup []int    // target group of each strong site
	Weak        []Vector // one vector per weak binding site
	WeakGroup   []int    // target group of each weak site
}

// NewComponent instantiates bp, sampling a fresh uniform [0, 1) vector of
// length totalActivities for every strong site and then every weak site.
func NewComponent(bp Blueprint, totalActivities int, src Source) *Component {
	c := &Component{
		Activity:    bp.Activity,
		Label:       bp.Label,
		StrongGroup: slices.Clone(bp.Strong),
		WeakGroup:   slices.Clone(bp.Weak),
	}
	c.Strong = make([]Vector, len(bp.Strong))
	for i := range c.Strong {
		c.Strong[i] = sampleVector(src, totalActivities)
	}
	c.Weak = make([]Vector, len(bp.Weak))
	for i := range c.Weak {
		c.Weak[i] = sampleVector(src, totalActivities)
	}
	return c
}

// Profile returns the matching signature of the component:
//
//	(1-bias)*onehot(activity) + bias*average(strong ++ weak)
//
// or just onehot(activity) when the component has no binding sites.
func (c *Component) Profile(totalActivities int, bias float64) Vector {
	identity := OneHot(totalActivities, c.Activity)
	if len(c.Strong)+len(c.Weak) == 0 {
		return identity
	}

	sites := make([]Vector, 0, len(c.Strong)+len(c.Weak))
	sites = append(sites, c.Strong...)
	sites = append(sites, c.Weak...)

	return Sum(Scale(identity, 1-bias), Scale(Average(sites), bias))
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() *Component {
	clone := &Component{
		Activity:    c.Activity,
		Label:       c.Label,
		StrongGroup: slices.Clone(c.StrongGroup),
		WeakGroup:   slices.Clone(c.WeakGroup),
		Strong:      make([]Vector, len(c.Strong)),
		Weak:        make([]Vector, len(c.Weak)),
	}
	for i, v := range c.Strong {
		clone.Strong[i] = slices.Clone(v)
	}
	for i, v := range c.Weak {
		clone.Weak[i] = slices.Clone(v)
	}
	return clone
}

// String returns a short description of the component.
func (c *Component) String() string {
	return fmt.Sprintf("Component(%s, activity: %d, strong: %v, weak: %v)", c.Label, c.Activity, c.StrongGroup, c.WeakGroup)
}
