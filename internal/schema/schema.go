package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// MetaBlock holds the free-form attributes of a pack's 'meta' block. The
// attributes are kept as raw HCL and evaluated by the loader.
type MetaBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Pack represents a `pack` block from a manifest file. One manifest declares
// exactly one pack; the block label is the pack id.
type Pack struct {
	Id           string     `hcl:"id,label"`
	Name         string     `hcl:"name"`
	Version      string     `hcl:"version"`
	Description  string     `hcl:"description,optional"`
	Dependencies []string   `hcl:"dependencies,optional"`
	TargetAgents []string   `hcl:"target_agents,optional"`
	Files        []string   `hcl:"files"`
	Meta         *MetaBlock `hcl:"meta,block"`
}

// Manifest represents the top-level structure of a pack manifest file.
type Manifest struct {
	Pack *Pack    `hcl:"pack,block"`
	Body hcl.Body `hcl:",remain"`
}
