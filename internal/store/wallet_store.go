package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sigil/internal/domain"
)

// WalletFileStore persists the wallet document at a single path.
type WalletFileStore struct {
	path string
	mu   sync.Mutex
}

// NewWalletFileStore returns a WalletFileStore for the document at path.
func NewWalletFileStore(path string) *WalletFileStore {
	return &WalletFileStore{path: path}
}

// Path returns the wallet document path.
func (s *WalletFileStore) Path() string { return s.path }

// Dir returns the directory holding the wallet document.
func (s *WalletFileStore) Dir() string { return filepath.Dir(s.path) }

// LoadWallet reads the wallet document. A missing file is reported as an
// error wrapping os.ErrNotExist; the caller decides whether to start empty.
func (s *WalletFileStore) LoadWallet() (domain.WalletFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		return domain.WalletFile{}, fmt.Errorf("%w: %w", domain.ErrWalletLoad, err)
	}
	var w domain.WalletFile
	if err := json.Unmarshal(b, &w); err != nil {
		return domain.WalletFile{}, fmt.Errorf("%w: %s: %w", domain.ErrWalletLoad, s.path, err)
	}
	if w.Version < 1 || w.Version > domain.WalletFormatVersion {
		return domain.WalletFile{}, fmt.Errorf("%w: %s: unsupported wallet version %d",
			domain.ErrWalletLoad, s.path, w.Version)
	}
	return w, nil
}

// SaveWallet replaces the wallet document atomically.
func (s *WalletFileStore) SaveWallet(w domain.WalletFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.Version == 0 {
		w.Version = domain.WalletFormatVersion
	}
	if err := os.MkdirAll(s.Dir(), 0o700); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWalletSave, err)
	}
	if err := writeJSON(s.path, w, 0o600); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWalletSave, s.path, err)
	}
	return nil
}

// Compile-time assertion that WalletFileStore implements domain.WalletStore.
var _ domain.WalletStore = (*WalletFileStore)(nil)
