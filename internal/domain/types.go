package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var personaNameRE = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]{0,63}$`)

// ValidatePersonaName rejects names that cannot be used as key file stems.
func ValidatePersonaName(name string) error {
	if !personaNameRE.MatchString(name) {
		return fmt.Errorf("%w: %q (use 1-64 letters, digits, '.', '_' or '-')", ErrInvalidPersonaName, name)
	}
	return nil
}

// KDFParams records how a persona's key-encryption key was derived from the
// user secret.
type KDFParams struct {
	Algo string `json:"algo"`
	Salt []byte `json:"salt"`
	N    int    `json:"n"`
	R    int    `json:"r"`
	P    int    `json:"p"`
}

// PersonaRecord is one wallet entry. Key paths are relative to the wallet
// file's directory unless absolute.
type PersonaRecord struct {
	SuiteID        SuiteID    `json:"cs_id"`
	PublicKeyPath  string     `json:"public_key_path"`
	PrivateKeyPath string     `json:"private_key_path"`
	Encrypted      bool       `json:"encrypted"`
	KDF            *KDFParams `json:"kdf,omitempty"`
	Fingerprint    string     `json:"fingerprint,omitempty"`
	CreatedAt      int64      `json:"created_at"`
}

// Persona is the read-only view of a wallet entry handed to callers.
type Persona struct {
	Name        string
	SuiteID     SuiteID
	Encrypted   bool
	Fingerprint string
	CreatedAt   int64
}

// WalletFormatVersion is the wallet document version written by this build.
const WalletFormatVersion = 1

// WalletFile is the durable wallet document. Top-level fields this build does
// not know are kept in Extra and written back on save.
type WalletFile struct {
	Version  int                        `json:"version"`
	Personas map[string]PersonaRecord   `json:"personas"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// NewWalletFile returns an empty document at the current version.
func NewWalletFile() WalletFile {
	return WalletFile{Version: WalletFormatVersion, Personas: map[string]PersonaRecord{}}
}

// MarshalJSON merges Extra back alongside the known fields.
func (w WalletFile) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(w.Extra)+2)
	for k, v := range w.Extra {
		out[k] = v
	}
	version, err := json.Marshal(w.Version)
	if err != nil {
		return nil, err
	}
	personas := w.Personas
	if personas == nil {
		personas = map[string]PersonaRecord{}
	}
	entries, err := json.Marshal(personas)
	if err != nil {
		return nil, err
	}
	out["version"] = version
	out["personas"] = entries
	return json.Marshal(out)
}

// UnmarshalJSON mirrors MarshalJSON.
func (w *WalletFile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("wallet document is null")
	}
	*w = WalletFile{Personas: map[string]PersonaRecord{}}
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &w.Version); err != nil {
			return fmt.Errorf("wallet version: %w", err)
		}
		delete(raw, "version")
	}
	if v, ok := raw["personas"]; ok {
		if err := json.Unmarshal(v, &w.Personas); err != nil {
			return fmt.Errorf("wallet personas: %w", err)
		}
		if w.Personas == nil {
			w.Personas = map[string]PersonaRecord{}
		}
		delete(raw, "personas")
	}
	if len(raw) > 0 {
		w.Extra = raw
	}
	return nil
}
