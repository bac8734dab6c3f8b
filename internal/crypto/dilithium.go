package crypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode2"

	"sigil/internal/domain"
)

// dilithium2 wraps the circl Dilithium2 (ML-DSA-44 round 3) implementation.
type dilithium2 struct{}

func (dilithium2) ID() domain.AlgorithmID { return domain.AlgorithmDilithium2 }

func (dilithium2) GenerateKey(rand io.Reader) ([]byte, []byte, error) {
	pk, sk, err := mode2.GenerateKey(rand)
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium2: generate key: %w", err)
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium2: marshal public key: %w", err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium2: marshal private key: %w", err)
	}
	return pub, priv, nil
}

func (dilithium2) Sign(private, digest []byte, _ domain.HashID) ([]byte, error) {
	if len(private) != mode2.PrivateKeySize {
		return nil, fmt.Errorf("dilithium2: private key must be %d bytes", mode2.PrivateKeySize)
	}
	sk, err := mode2.Scheme().UnmarshalBinaryPrivateKey(private)
	if err != nil {
		return nil, fmt.Errorf("dilithium2: invalid private key: %w", err)
	}
	return mode2.Scheme().Sign(sk, digest, nil), nil
}

func (dilithium2) Verify(public, digest, sig []byte, _ domain.HashID) bool {
	if len(public) != mode2.PublicKeySize || len(sig) != mode2.SignatureSize {
		return false
	}
	pk, err := mode2.Scheme().UnmarshalBinaryPublicKey(public)
	if err != nil {
		return false
	}
	return mode2.Scheme().Verify(pk, digest, sig, nil)
}
