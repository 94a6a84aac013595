package egp

import "errors"

var (
	// ErrGroupMismatch is returned when the regular and terminal group lists differ in length.
	ErrGroupMismatch = errors.New("regular and terminal group counts differ")
	// ErrUnknownGroup is returned when a binding site targets a group that does not exist.
	ErrUnknownGroup = errors.New("binding site targets unknown group")
	// ErrMissingTerminal is returned when a targeted group has no terminal blueprint.
	ErrMissingTerminal = errors.New("targeted group has no terminal blueprint")
	// ErrTerminalSites is returned when a terminal blueprint declares binding sites.
	ErrTerminalSites = errors.New("terminal blueprint declares binding sites")
	// ErrNoRegularGroups is returned when no group holds a regular blueprint.
	ErrNoRegularGroups = errors.New("catalog has no nonempty regular group")
	// ErrActivityRange is returned when the output blueprint's activity is not a valid id.
	ErrActivityRange = errors.New("activity out of range")
	// ErrChromosomeSize is returned when an ab-initio chromosome is requested too small.
	ErrChromosomeSize = errors.New("chromosome size too small")
	// ErrChromosomeShape is returned when a stored chromosome does not fit the catalog it is loaded with.
	ErrChromosomeShape = errors.New("chromosome does not fit catalog")
	// ErrDevelopment is returned when developing an individual panics.
	ErrDevelopment = errors.New("development failed")
	// ErrEmptyPopulation is returned by population operations that need members.
	ErrEmptyPopulation = errors.New("population is empty")
)
