package engine

import (
	"fmt"
	"strings"
)

// NotFoundError reports a pack id that does not exist in the catalog,
// either requested directly or referenced as a dependency.
type NotFoundError struct {
	Id string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pack not found: %s", e.Id)
}

// CycleError reports a dependency cycle. Path holds the cycle in traversal
// order, from the first entry of the repeated pack back to itself, so the
// first and last elements are the same id.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}
