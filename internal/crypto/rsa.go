package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"

	"sigil/internal/domain"
)

const rsaBits = 2048

// rsa2048 signs digests with RSA PKCS#1 v1.5. Private keys are PKCS#1 DER,
// public keys PKIX DER.
type rsa2048 struct{}

func (rsa2048) ID() domain.AlgorithmID { return domain.AlgorithmRSA2048 }

func (rsa2048) GenerateKey(rng io.Reader) ([]byte, []byte, error) {
	key, err := rsa.GenerateKey(rng, rsaBits)
	if err != nil {
		return nil, nil, fmt.Errorf("rsa: generate key: %w", err)
	}
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("rsa: marshal public key: %w", err)
	}
	return pub, x509.MarshalPKCS1PrivateKey(key), nil
}

func (rsa2048) Sign(private, digest []byte, h domain.HashID) ([]byte, error) {
	key, err := x509.ParsePKCS1PrivateKey(private)
	if err != nil {
		return nil, fmt.Errorf("rsa: invalid private key: %w", err)
	}
	ch, err := CryptoHash(h)
	if err != nil {
		return nil, err
	}
	return rsa.SignPKCS1v15(rand.Reader, key, ch, digest)
}

func (rsa2048) Verify(public, digest, sig []byte, h domain.HashID) bool {
	parsed, err := x509.ParsePKIXPublicKey(public)
	if err != nil {
		return false
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return false
	}
	ch, err := CryptoHash(h)
	if err != nil {
		return false
	}
	return rsa.VerifyPKCS1v15(key, ch, digest, sig) == nil
}
