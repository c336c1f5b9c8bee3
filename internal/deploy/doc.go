// Package deploy turns a validated composition into deployed agent
// configuration: it renders the output document, writes it to each target
// agent's config path, and records every deployment in a sqlite-backed
// state store so it can be inspected and rolled back.
package deploy
