// Package wallet manages the named personas of a single wallet.
//
// It generates cipher suite key pairs, seals private keys under the user
// secret, persists key files and the wallet document through the domain
// stores, and rebuilds suites on demand for signing and verification.
package wallet
