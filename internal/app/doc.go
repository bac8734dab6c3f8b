// Package app wires application dependencies for the CLI.
//
// It resolves Config from flags, environment and an optional config file,
// builds the logger, the concrete stores and the wallet service, and exposes
// them via App for commands to use.
package app
