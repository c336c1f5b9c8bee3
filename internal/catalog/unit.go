package catalog

import (
	"strings"

	"github.com/ryderdavid/agentsmd/internal/config"
)

// Metrics holds a unit's cached size measurements. Chars counts bytes of
// content, matching what agents enforce as their character limits; Words
// counts whitespace-separated fields.
type Metrics struct {
	Chars int
	Words int
}

// Unit is a fully loaded pack: its manifest definition plus the content
// assembled from its files and the metrics derived from that content.
// Units are immutable once the snapshot that owns them is built.
type Unit struct {
	Pack    *config.Pack
	Files   []string
	Content string
	Metrics Metrics

	// loadIssues records content problems found at snapshot build time
	// (missing files, empty globs). They surface through Snapshot.Validate
	// rather than failing the whole snapshot.
	loadIssues []string
}

// NewUnit builds a unit directly from a pack definition and its content,
// computing metrics eagerly. Snapshot construction goes through loadUnit
// instead; this constructor serves in-memory catalogs and tests.
func NewUnit(pack *config.Pack, content string) *Unit {
	return &Unit{
		Pack:    pack,
		Content: content,
		Metrics: measure(content),
	}
}

// measure computes the cached metrics for the given content.
func measure(content string) Metrics {
	return Metrics{
		Chars: len(content),
		Words: len(strings.Fields(content)),
	}
}
