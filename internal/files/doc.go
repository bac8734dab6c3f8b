// Package files provides directory and hashing helpers used by the CLI to
// inspect files without a persona.
package files
