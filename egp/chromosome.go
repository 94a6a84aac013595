package egp

import "fmt"

// Chromosome is the evolvable genome: one output component plus, per group, an
// ordered sequence of regular components. Terminals are not stored here; they
// live in the Catalog.
type Chromosome struct {
	Output  *Component
	Regular [][]*Component
}

// MakeMany instantiates n independent components from bp.
func MakeMany(bp Blueprint, n, totalActivities int, src Source) []*Component {
	out := make([]*Component, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewComponent(bp, totalActivities, src))
	}
	return out
}

// MakeGroup instantiates distribution[i] components of blueprints[i] for every
// i, concatenated in blueprint order.
func MakeGroup(blueprints []Blueprint, distribution []int, totalActivities int, src Source) []*Component {
	out := []*Component{}
	for i, bp := range blueprints {
		out = append(out, MakeMany(bp, distribution[i], totalActivities, src)...)
	}
	return out
}

// Distribute splits budget into slots non-negative integers summing to budget.
// Each slot receives a weight from src; weights are normalized, scaled by
// budget and truncated, and the shortfall is repaired one unit at a time on
// uniformly chosen slots.
func Distribute(slots, budget int, src Source) []int {
	if slots == 0 {
		return []int{}
	}

	weights := make([]float64, slots)
	total := 0.0
	for i := range weights {
		weights[i] = src.Float64()
		total += weights[i]
	}

	counts := make([]int, slots)
	assigned := 0
	for i, w := range weights {
		if total > 0 {
			counts[i] = int(float64(budget) * (w / total))
		}
		assigned += counts[i]
	}

	for ; assigned < budget; assigned++ {
		counts[src.Intn(slots)]++
	}
	// Rounding in the division can overshoot by a unit on rare inputs.
	for i := 0; assigned > budget; i = (i + 1) % slots {
		if counts[i] > 0 {
			counts[i]--
			assigned--
		}
	}
	return counts
}

// NewChromosome builds an ab-initio chromosome of exactly size components,
// counting the output and one of each terminal blueprint.
//
// size must exceed NumTerminals+1. The remaining budget is distributed over
// the flattened list of regular blueprints of all groups.
func NewChromosome(c *Catalog, size int, src Source) (*Chromosome, error) {
	if size <= c.NumTerminals+1 {
		return nil, fmt.Errorf("%w: need size > %d, got %d", ErrChromosomeSize, c.NumTerminals+1, size)
	}

	distribution := Distribute(c.NumRegulars, size-1-c.NumTerminals, src)

	ch := &Chromosome{Regular: make([][]*Component, len(c.Regular))}
	offset := 0
	for g, bps := range c.Regular {
		ch.Regular[g] = MakeGroup(bps, distribution[offset:offset+len(bps)], c.TotalActivities, src)
		offset += len(bps)
	}
	ch.Output = NewComponent(c.Output, c.TotalActivities, src)

	return ch, nil
}

// NumRegulars returns the number of regular components across all groups.
func (ch *Chromosome) NumRegulars() int {
	n := 0
	for _, group := range ch.Regular {
		n += len(group)
	}
	return n
}

// Len returns the number of components the chromosome carries, output
// included. Terminals live in the catalog and are not counted.
func (ch *Chromosome) Len() int {
	return ch.NumRegulars() + 1
}

// Clone returns a deep copy of the chromosome.
func (ch *Chromosome) Clone() *Chromosome {
	clone := &Chromosome{Regular: make([][]*Component, len(ch.Regular))}
	if ch.Output != nil {
		clone.Output = ch.Output.Clone()
	}
	for g, group := range ch.Regular {
		clone.Regular[g] = make([]*Component, len(group))
		for i, comp := range group {
			clone.Regular[g][i] = comp.Clone()
		}
	}
	return clone
}

// String returns a short description of the chromosome.
func (ch *Chromosome) String() string {
	sizes := make([]int, len(ch.Regular))
	for g, group := range ch.Regular {
		sizes[g] = len(group)
	}
	return fmt.Sprintf("Chromosome(output: %s, regulars per group: %v)", ch.Output.Label, sizes)
}
