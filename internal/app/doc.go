// Package app wires the application together: logging, the pack catalog,
// the agent registry, the deployment state store, and the optional watch
// loop. Commands in internal/cli construct an App and call into it; the
// composition engine itself stays pure and lives in internal/engine.
package app
