package crypto

import (
	"fmt"
	"io"

	"github.com/pornin/go-fn-dsa/fndsa"

	"sigil/internal/domain"
)

// falconLogN selects degree 512.
const falconLogN = 9

// falcon512 wraps FN-DSA (Falcon) at degree 512. The suite digest is passed
// as a raw message (pre-hash id 0) so the same encoding serves every hash.
type falcon512 struct{}

func (falcon512) ID() domain.AlgorithmID { return domain.AlgorithmFalcon512 }

func (falcon512) GenerateKey(rand io.Reader) ([]byte, []byte, error) {
	skey, vkey, err := fndsa.KeyGen(falconLogN, rand)
	if err != nil {
		return nil, nil, fmt.Errorf("falcon512: generate key: %w", err)
	}
	return vkey, skey, nil
}

func (falcon512) Sign(private, digest []byte, _ domain.HashID) ([]byte, error) {
	sig, err := fndsa.Sign(nil, private, fndsa.DOMAIN_NONE, 0, digest)
	if err != nil {
		return nil, fmt.Errorf("falcon512: sign: %w", err)
	}
	return sig, nil
}

func (falcon512) Verify(public, digest, sig []byte, _ domain.HashID) bool {
	return fndsa.Verify(public, fndsa.DOMAIN_NONE, 0, digest, sig)
}
