package crypto

import (
	"fmt"
	"io"

	"sigil/internal/domain"
)

// SignatureAlgorithm is one signature scheme with its own key encoding.
// Implementations sign a digest already produced by the suite's hash.
type SignatureAlgorithm interface {
	// ID returns the scheme identifier.
	ID() domain.AlgorithmID
	// GenerateKey returns a fresh key pair in the scheme's native encoding.
	GenerateKey(rand io.Reader) (public, private []byte, err error)
	// Sign signs digest, which was computed with h.
	Sign(private, digest []byte, h domain.HashID) ([]byte, error)
	// Verify reports whether sig is valid for digest under public.
	Verify(public, digest, sig []byte, h domain.HashID) bool
}

// AlgorithmFor returns the implementation for id.
func AlgorithmFor(id domain.AlgorithmID) (SignatureAlgorithm, error) {
	switch id {
	case domain.AlgorithmDilithium2:
		return dilithium2{}, nil
	case domain.AlgorithmFalcon512:
		return falcon512{}, nil
	case domain.AlgorithmRSA2048:
		return rsa2048{}, nil
	default:
		return nil, fmt.Errorf("%w: algorithm %d", domain.ErrUnsupportedCipherSuite, uint8(id))
	}
}
