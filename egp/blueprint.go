package egp

import "fmt"

// Blueprint is an immutable template from which Components are instantiated.
//
// Group membership is positional: a Blueprint belongs to the group whose slice
// holds it in the catalog. Activity is assigned by BuildCatalog for regular and
// terminal blueprints; the output blueprint keeps whatever it was declared with.
type Blueprint struct {
	Activity int
	Label    string
	// Strong lists the target group of each strong binding site. Strong sites
	// create new nodes during expression.
	Strong []int
	// Weak lists the target group of each weak binding site. Weak sites are
	// resolved after the strong pass against nodes that already exist.
	Weak []int
}

// TerminalBlueprint returns a blueprint without binding sites.
func TerminalBlueprint(label string) Blueprint {
	return Blueprint{Label: label}
}

// SingleMain returns a blueprint with one strong site into group 0.
func SingleMain(label string) Blueprint {
	return Blueprint{Label: label, Strong: []int{0}}
}

// DoubleMain returns a blueprint with two strong sites into group 0.
func DoubleMain(label string) Blueprint {
	return Blueprint{Label: label, Strong: []int{0, 0}}
}

// TerminalBlueprints returns one terminal blueprint per label.
func TerminalBlueprints(labels ...string) []Blueprint {
	bps := make([]Blueprint, len(labels))
	for i, label := range labels {
		bps[i] = TerminalBlueprint(label)
	}
	return bps
}

// IsTerminal reports whether the blueprint declares no binding sites.
func (b Blueprint) IsTerminal() bool {
	return len(b.Strong) == 0 && len(b.Weak) == 0
}

// String returns a short description of the blueprint.
func (b Blueprint) String() string {
	return fmt.Sprintf("Blueprint(%s, activity: %d, strong: %v, weak: %v)", b.Label, b.Activity, b.Strong, b.Weak)
}
