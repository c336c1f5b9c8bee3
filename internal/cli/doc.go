// Package cli defines the agentsmd command tree. Each subcommand builds an
// app.App, grabs one catalog snapshot, and renders the engine's structured
// results; all composition semantics live in internal/engine.
package cli
