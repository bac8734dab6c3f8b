package crypto

import (
	stdcrypto "crypto"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"sigil/internal/domain"
)

// NewHash returns a fresh hash.Hash for h.
func NewHash(h domain.HashID) (hash.Hash, error) {
	switch h {
	case domain.HashSHA256:
		return sha256.New(), nil
	case domain.HashSHA384:
		return sha512.New384(), nil
	case domain.HashSHA512:
		return sha512.New(), nil
	case domain.HashSHA3_256:
		return sha3.New256(), nil
	case domain.HashBLAKE2b256:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("unsupported hash function %d", uint8(h))
	}
}

// Digest hashes data with h.
func Digest(h domain.HashID, data []byte) ([]byte, error) {
	hh, err := NewHash(h)
	if err != nil {
		return nil, err
	}
	hh.Write(data)
	return hh.Sum(nil), nil
}

// DigestReader hashes everything read from r with h.
func DigestReader(h domain.HashID, r io.Reader) ([]byte, error) {
	hh, err := NewHash(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(hh, r); err != nil {
		return nil, err
	}
	return hh.Sum(nil), nil
}

// CryptoHash maps h onto the standard library identifier used by primitives
// such as RSA PKCS#1 v1.5.
func CryptoHash(h domain.HashID) (stdcrypto.Hash, error) {
	switch h {
	case domain.HashSHA256:
		return stdcrypto.SHA256, nil
	case domain.HashSHA384:
		return stdcrypto.SHA384, nil
	case domain.HashSHA512:
		return stdcrypto.SHA512, nil
	case domain.HashSHA3_256:
		return stdcrypto.SHA3_256, nil
	case domain.HashBLAKE2b256:
		return stdcrypto.BLAKE2b_256, nil
	default:
		return 0, fmt.Errorf("unsupported hash function %d", uint8(h))
	}
}
