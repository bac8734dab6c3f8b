// Package signedfile defines the self-describing signed-file format.
//
// A signed file is a binary header followed by the original file bytes,
// untouched:
//
//	offset size  field
//	0      4     magic "SGL\x00"
//	4      1     format version (1)
//	5      1     cipher suite id
//	6      1     hash function id
//	7      4     signature length n (big-endian uint32)
//	11     n     signature
//	11+n   8     payload length m (big-endian uint64)
//	19+n   m     payload
//
// The header names the suite and hash that produced the signature, so
// verification needs only the signer's public key. Peek answers "is this
// signed" from the header alone; Strip returns exactly the payload bytes that
// were embedded, which makes remove-signature the inverse of sign.
package signedfile
