package engine

import "github.com/ryderdavid/agentsmd/internal/catalog"

// Catalog is the read-only view of loaded packs the engine operates
// against. A snapshot passed to an engine call must stay consistent for
// the duration of that call; internal/catalog.Snapshot satisfies this by
// construction, and tests substitute in-memory fakes.
type Catalog interface {
	// Unit returns the loaded unit for a pack id.
	Unit(id string) (*catalog.Unit, bool)

	// Validate runs the catalog's structural checks for a pack and returns
	// human-readable errors and warnings. The engine consumes these
	// verbatim; it never inspects content itself.
	Validate(id string) (errs, warns []string)
}
