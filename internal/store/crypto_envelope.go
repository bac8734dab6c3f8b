package store

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"sigil/internal/domain"
	"sigil/internal/util/memzero"
)

const (
	kdfScrypt = "scrypt"
	saltSize  = 16
)

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// NewKDFParams returns scrypt parameters with a fresh random salt.
func NewKDFParams() (domain.KDFParams, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return domain.KDFParams{}, err
	}
	N, r, p := scryptParamsDefault()
	return domain.KDFParams{Algo: kdfScrypt, Salt: salt, N: N, R: r, P: p}, nil
}

// DeriveKey turns the user secret into an AEAD key. This is the only place a
// raw secret is consumed; everything above it passes the secret through.
func DeriveKey(secret []byte, params domain.KDFParams) ([]byte, error) {
	if params.Algo != kdfScrypt {
		return nil, fmt.Errorf("unsupported kdf %q", params.Algo)
	}
	if len(params.Salt) == 0 {
		return nil, fmt.Errorf("kdf salt missing")
	}
	return scrypt.Key(secret, params.Salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
}

// Encrypt seals plaintext under key with XChaCha20-Poly1305 and returns
// nonce || ciphertext. A new random nonce is drawn on every call.
func Encrypt(plaintext, key, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return aead.Seal(out, out[:aead.NonceSize()], plaintext, ad), nil
}

// Decrypt opens a blob produced by Encrypt. Every failure (short blob, wrong
// key, tampering, wrong associated data) is reported as ErrDecryptionFailed.
func Decrypt(blob, key, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	if len(blob) < aead.NonceSize()+aead.Overhead() {
		return nil, domain.ErrDecryptionFailed
	}
	nonce, ct := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	pt, err := aead.Open(nil, nonce, ct, ad)
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	return pt, nil
}

// KeyStore seals private key bytes under a key derived from a caller-supplied
// secret. A fresh salt is drawn per Seal and returned for the wallet to keep.
type KeyStore struct {
	secret []byte
}

// NewKeyStore returns a KeyStore for secret. An empty secret means keys are
// stored unencrypted; see Enabled.
func NewKeyStore(secret []byte) *KeyStore {
	return &KeyStore{secret: secret}
}

// Enabled reports whether a secret was supplied.
func (k *KeyStore) Enabled() bool { return len(k.secret) > 0 }

// Seal encrypts plaintext and returns the blob with the KDF parameters needed
// to open it again.
func (k *KeyStore) Seal(plaintext, ad []byte) ([]byte, domain.KDFParams, error) {
	if !k.Enabled() {
		return nil, domain.KDFParams{}, fmt.Errorf("%w: no secret supplied", domain.ErrKeyUnavailable)
	}
	params, err := NewKDFParams()
	if err != nil {
		return nil, domain.KDFParams{}, err
	}
	key, err := DeriveKey(k.secret, params)
	if err != nil {
		return nil, domain.KDFParams{}, err
	}
	defer memzero.Zero(key)

	blob, err := Encrypt(plaintext, key, ad)
	if err != nil {
		return nil, domain.KDFParams{}, err
	}
	return blob, params, nil
}

// Open decrypts a blob produced by Seal.
func (k *KeyStore) Open(blob, ad []byte, params domain.KDFParams) ([]byte, error) {
	if !k.Enabled() {
		return nil, fmt.Errorf("%w: no secret supplied", domain.ErrKeyUnavailable)
	}
	key, err := DeriveKey(k.secret, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecryptionFailed, err)
	}
	defer memzero.Zero(key)

	return Decrypt(blob, key, ad)
}
