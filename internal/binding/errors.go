package binding

import (
	"fmt"
	"strings"
)

// MissingBindingError lists every required value that was not supplied.
type MissingBindingError struct {
	Names []string
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("missing bindings: %s", strings.Join(e.Names, ", "))
}

// CyclicDerivationError reports derivation rules that depend on each other.
// Cycle starts and ends with the same name, e.g. [a b a].
type CyclicDerivationError struct {
	Cycle []string
}

func (e *CyclicDerivationError) Error() string {
	return fmt.Sprintf("cyclic derivation: %s", strings.Join(e.Cycle, " -> "))
}

// DerivationError wraps a failure returned by a rule's function.
type DerivationError struct {
	Name string
	Err  error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("deriving %q: %v", e.Name, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }
