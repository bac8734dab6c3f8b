// Package store provides file-based persistence for sigil's wallet and keys.
//
// It contains concrete implementations of the domain storage interfaces and
// the at-rest encryption envelope:
//   - KeyStore: scrypt key derivation and XChaCha20-Poly1305 sealing of
//     private key bytes (Encrypt, Decrypt, DeriveKey)
//   - WalletFileStore: the JSON wallet document, saved atomically
//   - KeyFileStore: one encrypted private-key blob and one plaintext public
//     key per persona
//
// Every write goes through a temp file and rename, so a crash leaves either
// the previous or the new content on disk. Stores do not lock across
// processes.
package store
