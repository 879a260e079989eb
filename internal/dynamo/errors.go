package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation commands.
var (
	// ErrUnknownElement indicates an atomic number missing from the reference table.
	ErrUnknownElement = errors.New("dynamo: unknown element")

	// ErrUnknownIsotope indicates an isotope index outside the element's isotope list.
	ErrUnknownIsotope = errors.New("dynamo: unknown isotope")

	// ErrAtomNotFound indicates a command referenced an atom that no longer exists.
	ErrAtomNotFound = errors.New("dynamo: atom not found")

	// ErrInvalidConfig indicates a tunable outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid config")

	// ErrNoAtoms indicates a selection or recipe that matched nothing.
	ErrNoAtoms = errors.New("dynamo: no atoms selected")

	// ErrInvalidState indicates a non-finite position or velocity.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// SimError wraps an error with the tick it occurred on.
type SimError struct {
	Tick    int
	Atom    AtomID
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("tick %d (atom %d): %v", e.Tick, e.Atom, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
