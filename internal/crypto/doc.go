// Package crypto exposes the primitives sigil composes into cipher suites.
//
// Contents
//
//   - Digest functions selected by domain.HashID (Digest, DigestReader, NewHash)
//   - One SignatureAlgorithm per supported scheme: Dilithium2 (circl),
//     Falcon-512 (FN-DSA) and RSA-2048 PKCS#1 v1.5 (AlgorithmFor)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Keys cross this package as opaque byte slices in each scheme's native
// encoding. Algorithms sign and verify digests, never whole files. Verify
// functions return false for malformed keys or signatures instead of erroring.
package crypto
