package domain

import (
	"errors"

	"go.uber.org/multierr"
)

// Error kinds. Callers branch with errors.Is; concrete errors wrap one of
// these plus the underlying cause.
var (
	ErrUnsupportedCipherSuite = errors.New("unsupported cipher suite")
	ErrDuplicatePersona       = errors.New("persona already exists")
	ErrPersonaNotFound        = errors.New("persona not found")
	ErrInvalidPersonaName     = errors.New("invalid persona name")
	ErrKeyUnavailable         = errors.New("private key unavailable")
	ErrWalletLoad             = errors.New("wallet load failed")
	ErrWalletSave             = errors.New("wallet save failed")
	ErrDecryptionFailed       = errors.New("decryption failed (wrong passphrase or tampered key)")
	ErrMalformedHeader        = errors.New("malformed signed-file header")
	ErrVerificationFailed     = errors.New("signature verification failed")
	ErrIO                     = errors.New("i/o error")
	ErrSigningFailure         = errors.New("signing failure")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrUnsupportedCipherSuite, "UnsupportedCipherSuite"},
	{ErrDuplicatePersona, "DuplicatePersona"},
	{ErrPersonaNotFound, "PersonaNotFound"},
	{ErrInvalidPersonaName, "InvalidPersonaName"},
	{ErrKeyUnavailable, "KeyUnavailable"},
	{ErrWalletLoad, "WalletLoadError"},
	{ErrWalletSave, "WalletSaveError"},
	{ErrDecryptionFailed, "DecryptionFailed"},
	{ErrMalformedHeader, "MalformedHeader"},
	{ErrVerificationFailed, "VerificationFailed"},
	{ErrSigningFailure, "SigningFailure"},
	{ErrIO, "IoError"},
}

// KindOf returns the name of the first error kind err wraps, or "" when err
// carries none.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// RemovalReport carries the outcome of deleting each key file of a removed
// persona. A nil field means that file is gone.
type RemovalReport struct {
	PrivateKeyPath string
	PrivateKeyErr  error
	PublicKeyPath  string
	PublicKeyErr   error
}

// Err combines both file outcomes; nil when both files were removed.
func (r RemovalReport) Err() error {
	return multierr.Combine(r.PrivateKeyErr, r.PublicKeyErr)
}
