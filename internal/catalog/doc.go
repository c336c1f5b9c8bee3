// Package catalog materializes the loaded pack model into an immutable
// snapshot: each pack's content files are read, concatenated, and measured
// exactly once at snapshot build time. The engine resolves and composes
// against one snapshot for the duration of a call, so a concurrent reload
// can never produce see-saw results mid-resolution.
package catalog
