// Package ciphersuite is the single polymorphic surface over the supported
// (signature algorithm, hash function) pairings.
//
// A Suite is a tagged value: its domain.SuiteID selects the algorithm and
// hash, and its keys are opaque bytes in that algorithm's encoding. The
// private key is present only after the wallet has decrypted it; a Suite
// without one can still verify.
package ciphersuite
