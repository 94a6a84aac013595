package egp

// MutationKind identifies which mutation Mutate applied.
type MutationKind string

const (
	MutateActivity      MutationKind = "activity"
	MutateOutputBinding MutationKind = "output_binding"
	MutateBinding       MutationKind = "binding"
)

// RecombinationKind identifies which recombination Recombine applied.
type RecombinationKind string

const (
	RecombineRemove   RecombinationKind = "remove"
	RecombineTransfer RecombinationKind = "transfer"
)

// Mutate changes ch in place. With probability 1/2 it applies an activity
// mutation; otherwise, with probability 1/n where n is the number of regular
// components in ch, it perturbs the output's binding geometry, else the binding
// geometry of a regular component. Group sizes never change.
//
// Degenerate picks (an empty group, a component without strong sites) leave ch
// untouched.
func Mutate(c *Catalog, ch *Chromosome, src Source) MutationKind {
	if src.Float64() < 0.5 {
		mutateActivity(c, ch, src)
		return MutateActivity
	}

	if src.Float64() < 1/float64(ch.NumRegulars()) {
		mutateBindingSite(c, ch.Output, src)
		return MutateOutputBinding
	}

	group := c.randomNonemptyGroup(src)
	if len(ch.Regular[group]) == 0 {
		return MutateBinding
	}
	mutateBindingSite(c, ch.Regular[group][src.Intn(len(ch.Regular[group]))], src)
	return MutateBinding
}

// mutateActivity re-instantiates a random blueprint of a random nonempty group
// and rewrites the identity of one chromosome component sharing its activity.
// Binding vectors are left alone.
func mutateActivity(c *Catalog, ch *Chromosome, src Source) {
	group := c.randomNonemptyGroup(src)
	bps := c.Regular[group]
	fresh := NewComponent(bps[src.Intn(len(bps))], c.TotalActivities, src)

	compatible := 0
	for _, comp := range ch.Regular[group] {
		if comp.Activity == fresh.Activity {
			compatible++
		}
	}
	if compatible == 0 {
		return
	}

	target := src.Intn(compatible)
	for _, comp := range ch.Regular[group] {
		if comp.Activity != fresh.Activity {
			continue
		}
		if target == 0 {
			comp.Activity = fresh.Activity
			comp.Label = fresh.Label
			return
		}
		target--
	}
}

// mutateBindingSite replaces one coordinate of one strong binding vector with a
// fresh sample. Weak sites are never mutated.
func mutateBindingSite(c *Catalog, comp *Component, src Source) {
	if len(comp.Strong) == 0 {
		return
	}
	site := comp.Strong[src.Intn(len(comp.Strong))]
	site[src.Intn(c.TotalActivities)] = src.Float64()
}

// Recombine returns a child built from a clone of parent. With probability 1/2
// up to nTransfer consecutive components are removed from one random nonempty
// group of the child; otherwise up to nTransfer consecutive components of donor
// in that group are appended to the child's group. Neither parent is modified.
func Recombine(c *Catalog, nTransfer int, parent, donor *Chromosome, src Source) (*Chromosome, RecombinationKind) {
	child := parent.Clone()

	if src.Float64() < 0.5 {
		recombineRemove(c, nTransfer, child, src)
		return child, RecombineRemove
	}
	recombineTransfer(c, nTransfer, child, donor, src)
	return child, RecombineTransfer
}

// recombineRemove deletes min(n, len-start) components starting at a random
// offset of a random nonempty group.
func recombineRemove(c *Catalog, n int, child *Chromosome, src Source) {
	group := c.randomNonemptyGroup(src)
	members := child.Regular[group]
	if len(members) == 0 {
		return
	}

	n = min(max(n, 0), len(members))
	start := src.Intn(len(members))
	end := min(start+n, len(members))

	child.Regular[group] = append(members[:start:start], members[end:]...)
}

// recombineTransfer appends donor components from a random offset of a random
// nonempty group, stopping after n components or at the end of the donor group.
func recombineTransfer(c *Catalog, n int, child, donor *Chromosome, src Source) {
	group := c.randomNonemptyGroup(src)
	members := donor.Regular[group]
	if len(members) == 0 {
		return
	}

	n = min(max(n, 0), len(members))
	start := src.Intn(len(members))
	for i := start; i < len(members) && n > 0; i++ {
		child.Regular[group] = append(child.Regular[group], members[i].Clone())
		n--
	}
}
