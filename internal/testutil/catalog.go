// Package testutil provides shared test fixtures: an in-memory catalog for
// engine tests and on-disk pack fixtures for loader and snapshot tests.
package testutil

import (
	"github.com/ryderdavid/agentsmd/internal/catalog"
	"github.com/ryderdavid/agentsmd/internal/config"
)

// Catalog is an in-memory catalog for tests. It satisfies the engine's
// catalog interface without touching the filesystem.
type Catalog struct {
	units map[string]*catalog.Unit
	errs  map[string][]string
	warns map[string][]string
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		units: make(map[string]*catalog.Unit),
		errs:  make(map[string][]string),
		warns: make(map[string][]string),
	}
}

// Add registers a pack with the given dependencies and content, returning
// the catalog for chaining.
func (c *Catalog) Add(id string, deps []string, content string) *Catalog {
	c.units[id] = catalog.NewUnit(&config.Pack{
		Id:           id,
		Name:         id,
		Version:      "1.0.0",
		Dependencies: deps,
	}, content)
	return c
}

// AddUnit registers a fully specified unit.
func (c *Catalog) AddUnit(pack *config.Pack, content string) *Catalog {
	c.units[pack.Id] = catalog.NewUnit(pack, content)
	return c
}

// FailValidation makes Validate report the given error messages for id.
func (c *Catalog) FailValidation(id string, msgs ...string) *Catalog {
	c.errs[id] = append(c.errs[id], msgs...)
	return c
}

// WarnValidation makes Validate report the given warnings for id.
func (c *Catalog) WarnValidation(id string, msgs ...string) *Catalog {
	c.warns[id] = append(c.warns[id], msgs...)
	return c
}

// Unit returns the registered unit for id.
func (c *Catalog) Unit(id string) (*catalog.Unit, bool) {
	u, ok := c.units[id]
	return u, ok
}

// Validate returns the stubbed structural results for id.
func (c *Catalog) Validate(id string) (errs, warns []string) {
	if _, ok := c.units[id]; !ok {
		return []string{"pack not found: " + id}, nil
	}
	return c.errs[id], c.warns[id]
}
