// Package commands defines the sigil CLI and wires dependencies for subcommands.
//
// Commands
//
//   - generate          Create a persona with a fresh key pair
//   - remove            Delete a persona and its key files
//   - personas          List wallet personas
//   - fingerprint       Print a persona's public key fingerprint
//   - sign              Sign a file, writing a signed copy
//   - verify            Check a signed file against a persona
//   - remove-signature  Strip the signature header from a signed file
//   - list-signatures   List signed files in a directory
//   - list-files        List unsigned files in a directory
//   - algorithms        Print the supported cipher suites
//   - hash              Print a file digest
//
// # Implementation
//
// The root command resolves configuration (flags, SIGIL_* environment,
// optional config.yaml), builds the logger and loads the wallet before any
// subcommand runs, so handlers share one app context.
package commands
