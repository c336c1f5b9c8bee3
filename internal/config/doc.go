// Package config defines the format-agnostic model of the catalog: rule
// packs and consumer agents, decoupled from the on-disk manifest format.
// Loaders (see internal/hcl) translate their native schema into this model;
// everything downstream of loading consumes only these types.
package config
