package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/ctxlog"
)

// Snapshot is an immutable view of the catalog at a single point in time.
// All engine calls operate against exactly one snapshot.
type Snapshot struct {
	units       map[string]*Unit
	knownAgents map[string]struct{}
}

// NewSnapshot builds a snapshot from a loaded config model. Content files
// are resolved relative to each pack's manifest directory via doublestar
// glob patterns and concatenated in declared pattern order. Content
// problems are recorded per unit instead of failing the build, so a single
// broken pack cannot take the whole catalog offline.
func NewSnapshot(ctx context.Context, model *config.Model, knownAgents []string) *Snapshot {
	logger := ctxlog.FromContext(ctx)

	s := &Snapshot{
		units:       make(map[string]*Unit, len(model.Packs)),
		knownAgents: make(map[string]struct{}, len(knownAgents)),
	}
	for _, id := range knownAgents {
		s.knownAgents[strings.ToLower(id)] = struct{}{}
	}

	for id, pack := range model.Packs {
		unit := loadUnit(pack)
		s.units[id] = unit
		logger.Debug("Catalog unit loaded.",
			"id", id, "files", len(unit.Files), "chars", unit.Metrics.Chars, "issues", len(unit.loadIssues))
	}

	logger.Info("Catalog snapshot built.", "units", len(s.units))
	return s
}

// loadUnit reads and measures a single pack's content.
func loadUnit(pack *config.Pack) *Unit {
	unit := &Unit{Pack: pack}
	packDir := filepath.Dir(pack.ManifestPath)

	for _, pattern := range pack.Files {
		matches, err := doublestar.Glob(os.DirFS(packDir), pattern)
		if err != nil {
			unit.loadIssues = append(unit.loadIssues, fmt.Sprintf("invalid file pattern %q: %v", pattern, err))
			continue
		}
		if len(matches) == 0 {
			unit.loadIssues = append(unit.loadIssues, fmt.Sprintf("file not found: %s", pattern))
			continue
		}
		// Glob order is filesystem-dependent; sort within each pattern so
		// content assembly is deterministic across runs.
		sort.Strings(matches)
		for _, match := range matches {
			unit.Files = append(unit.Files, match)
		}
	}

	var b strings.Builder
	for _, file := range unit.Files {
		data, err := os.ReadFile(filepath.Join(packDir, file))
		if err != nil {
			unit.loadIssues = append(unit.loadIssues, fmt.Sprintf("failed to read %s: %v", file, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.Write(data)
	}

	unit.Content = b.String()
	unit.Metrics = measure(unit.Content)
	return unit
}

// Unit returns the loaded unit for the given pack id.
func (s *Snapshot) Unit(id string) (*Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

// Ids returns all pack ids in the snapshot, sorted for stable listings.
func (s *Snapshot) Ids() []string {
	ids := make([]string, 0, len(s.units))
	for id := range s.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of units in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.units)
}

// Validate runs the structural checks for a single unit: content loaded,
// declared dependencies present in the snapshot, target agents known.
// Errors are fatal to composition; warnings are advisory.
func (s *Snapshot) Validate(id string) (errs, warns []string) {
	unit, ok := s.units[id]
	if !ok {
		return []string{fmt.Sprintf("pack not found: %s", id)}, nil
	}

	errs = append(errs, unit.loadIssues...)

	for _, depId := range unit.Pack.Dependencies {
		if _, ok := s.units[depId]; !ok {
			errs = append(errs, fmt.Sprintf("dependency not found: %s", depId))
		}
	}

	for _, agentId := range unit.Pack.TargetAgents {
		if agentId == "*" {
			continue
		}
		if len(s.knownAgents) == 0 {
			continue
		}
		if _, ok := s.knownAgents[strings.ToLower(agentId)]; !ok {
			warns = append(warns, fmt.Sprintf("unknown target agent: %s", agentId))
		}
	}

	if unit.Metrics.Chars == 0 && len(unit.loadIssues) == 0 {
		warns = append(warns, "pack has no content")
	}

	return errs, warns
}
