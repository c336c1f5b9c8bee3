// Package agents holds the consumer-profile registry: the static table of
// known AI coding assistants, their configuration paths, and their content
// budgets. The registry merges an optional agents.yaml file over the
// builtin defaults; the engine consults it read-only.
package agents
