// Package engine is the composition core of the application. It resolves a
// pack's dependency closure into a safe load order, merges the resolutions
// of multiple requested packs into one deduplicated sequence, aggregates
// character/word budgets, and validates compositions against an agent's
// limits.
//
// Every operation is a pure function of a catalog snapshot and its request
// parameters: no I/O, no caching, no shared mutable state. Concurrent calls
// need no locking, and results are owned exclusively by the caller.
package engine
