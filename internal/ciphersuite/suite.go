package ciphersuite

import (
	"crypto/rand"
	"fmt"
	"os"

	"sigil/internal/crypto"
	"sigil/internal/domain"
	"sigil/internal/signedfile"
	"sigil/internal/util/memzero"
)

// Suite is one persona's key pair bound to a cipher suite.
type Suite struct {
	name    string
	desc    domain.SuiteDescriptor
	alg     crypto.SignatureAlgorithm
	public  []byte
	private []byte
}

// Generate creates a fresh key pair for suite id.
func Generate(name string, id domain.SuiteID) (*Suite, error) {
	desc, alg, err := resolve(id)
	if err != nil {
		return nil, err
	}
	pub, priv, err := alg.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSigningFailure, err)
	}
	return &Suite{name: name, desc: desc, alg: alg, public: pub, private: priv}, nil
}

// New rebuilds a suite from stored key bytes. A nil private key yields a
// verify-only suite.
func New(name string, id domain.SuiteID, public, private []byte) (*Suite, error) {
	desc, alg, err := resolve(id)
	if err != nil {
		return nil, err
	}
	if len(public) == 0 {
		return nil, fmt.Errorf("%w: empty public key for %q", domain.ErrKeyUnavailable, name)
	}
	return &Suite{name: name, desc: desc, alg: alg, public: public, private: private}, nil
}

func resolve(id domain.SuiteID) (domain.SuiteDescriptor, crypto.SignatureAlgorithm, error) {
	desc, err := id.Descriptor()
	if err != nil {
		return domain.SuiteDescriptor{}, nil, err
	}
	alg, err := crypto.AlgorithmFor(desc.Algorithm)
	if err != nil {
		return domain.SuiteDescriptor{}, nil, err
	}
	return desc, alg, nil
}

// Name returns the persona name the suite belongs to.
func (s *Suite) Name() string { return s.name }

// ID returns the suite identifier.
func (s *Suite) ID() domain.SuiteID { return s.desc.ID }

// Descriptor returns the (algorithm, hash) pairing.
func (s *Suite) Descriptor() domain.SuiteDescriptor { return s.desc }

// PublicKeyBytes returns the public key in the algorithm's native encoding.
func (s *Suite) PublicKeyBytes() []byte { return s.public }

// HasPrivateKey reports whether the private key is loaded.
func (s *Suite) HasPrivateKey() bool { return len(s.private) > 0 }

// PrivateKeyBytes returns the private key, or ErrKeyUnavailable when it was
// never decrypted.
func (s *Suite) PrivateKeyBytes() ([]byte, error) {
	if !s.HasPrivateKey() {
		return nil, fmt.Errorf("%w: persona %q", domain.ErrKeyUnavailable, s.name)
	}
	return s.private, nil
}

// Fingerprint returns a short identifier of the public key.
func (s *Suite) Fingerprint() string { return crypto.Fingerprint(s.public) }

// Wipe zeroes and drops the private key.
func (s *Suite) Wipe() {
	memzero.Zero(s.private)
	s.private = nil
}

// SignBytes hashes payload with the suite's hash and signs the digest.
func (s *Suite) SignBytes(payload []byte) ([]byte, error) {
	if !s.HasPrivateKey() {
		return nil, fmt.Errorf("%w: persona %q", domain.ErrKeyUnavailable, s.name)
	}
	digest, err := crypto.Digest(s.desc.Hash, payload)
	if err != nil {
		return nil, err
	}
	sig, err := s.alg.Sign(s.private, digest, s.desc.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSigningFailure, err)
	}
	return sig, nil
}

// VerifyBytes checks sig over payload, hashing with h.
func (s *Suite) VerifyBytes(payload []byte, h domain.HashID, sig []byte) error {
	digest, err := crypto.Digest(h, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedHeader, err)
	}
	if !s.alg.Verify(s.public, digest, sig, h) {
		return fmt.Errorf("%w: persona %q", domain.ErrVerificationFailed, s.name)
	}
	return nil
}

// Sign reads inputPath, signs its bytes and atomically writes the signed file
// to outputPath.
func (s *Suite) Sign(inputPath, outputPath string) (signedfile.Header, error) {
	if !s.HasPrivateKey() {
		return signedfile.Header{}, fmt.Errorf("%w: persona %q", domain.ErrKeyUnavailable, s.name)
	}
	payload, err := os.ReadFile(inputPath)
	if err != nil {
		return signedfile.Header{}, fmt.Errorf("%w: read %s: %w", domain.ErrIO, inputPath, err)
	}
	sig, err := s.SignBytes(payload)
	if err != nil {
		return signedfile.Header{}, err
	}
	return signedfile.WriteFile(outputPath, signedfile.Header{
		SuiteID:   s.desc.ID,
		HashID:    s.desc.Hash,
		Signature: sig,
	}, payload)
}

// Verify checks the signed file at signedPath against this suite's public
// key. A structurally invalid file fails with ErrMalformedHeader; a valid
// file whose signature does not check out, or that names another suite,
// fails with ErrVerificationFailed.
func (s *Suite) Verify(signedPath string) (signedfile.Header, error) {
	h, payload, err := signedfile.ReadFile(signedPath)
	if err != nil {
		return signedfile.Header{}, err
	}
	if h.SuiteID != s.desc.ID {
		return h, fmt.Errorf("%w: file signed with suite %s, persona %q uses suite %s",
			domain.ErrVerificationFailed, h.SuiteID, s.name, s.desc.ID)
	}
	if err := s.VerifyBytes(payload, h.HashID, h.Signature); err != nil {
		return h, err
	}
	return h, nil
}
