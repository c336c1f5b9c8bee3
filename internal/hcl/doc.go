// Package hcl implements the config.Loader interface for HCL pack
// manifests. It owns all HCL-specific parsing and evaluation; the rest of
// the application only ever sees the format-agnostic config model.
package hcl
