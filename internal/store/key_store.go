package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigil/internal/domain"
	"sigil/internal/util/fsutil"
)

const (
	privateKeyExt = ".key"
	publicKeyExt  = ".pub"
)

// KeyFileStore keeps each persona's key artifacts as <name>.key (sealed
// private key) and <name>.pub (public key) under a keys directory.
type KeyFileStore struct {
	baseDir string // wallet directory; relative paths resolve against it
	keysDir string
}

// NewKeyFileStore returns a KeyFileStore writing into keysDir. Paths handed
// back to the wallet are relative to baseDir when keysDir lies inside it.
func NewKeyFileStore(baseDir, keysDir string) *KeyFileStore {
	return &KeyFileStore{baseDir: baseDir, keysDir: keysDir}
}

// WriteKeys stores both artifacts, replacing stale files left by an earlier
// crash, and returns their wallet paths.
func (s *KeyFileStore) WriteKeys(name string, privateBlob, public []byte) (string, string, error) {
	if err := os.MkdirAll(s.keysDir, 0o700); err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	privPath := filepath.Join(s.keysDir, name+privateKeyExt)
	pubPath := filepath.Join(s.keysDir, name+publicKeyExt)

	if err := fsutil.WriteFileAtomic(privPath, privateBlob, 0o600); err != nil {
		return "", "", fmt.Errorf("%w: write private key: %w", domain.ErrIO, err)
	}
	if err := fsutil.WriteFileAtomic(pubPath, public, 0o644); err != nil {
		_ = os.Remove(privPath)
		return "", "", fmt.Errorf("%w: write public key: %w", domain.ErrIO, err)
	}
	return s.relative(privPath), s.relative(pubPath), nil
}

// ReadPrivate returns the stored private-key artifact at path.
func (s *KeyFileStore) ReadPrivate(path string) ([]byte, error) {
	return s.read(path)
}

// ReadPublic returns the stored public key at path.
func (s *KeyFileStore) ReadPublic(path string) ([]byte, error) {
	return s.read(path)
}

// RemoveKeys deletes both artifacts independently. A file that is already
// gone counts as removed.
func (s *KeyFileStore) RemoveKeys(privPath, pubPath string) domain.RemovalReport {
	return domain.RemovalReport{
		PrivateKeyPath: privPath,
		PrivateKeyErr:  s.remove(privPath),
		PublicKeyPath:  pubPath,
		PublicKeyErr:   s.remove(pubPath),
	}
}

// Resolve maps a wallet path onto the filesystem.
func (s *KeyFileStore) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

func (s *KeyFileStore) read(path string) ([]byte, error) {
	b, err := os.ReadFile(s.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return b, nil
}

func (s *KeyFileStore) remove(path string) error {
	if path == "" {
		return nil
	}
	if !s.inKeysDir(path) {
		return fmt.Errorf("%w: refusing to remove %s outside %s", domain.ErrIO, path, s.keysDir)
	}
	err := os.Remove(s.Resolve(path))
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: remove %s: %w", domain.ErrIO, path, err)
}

// inKeysDir reports whether a wallet path resolves to a file directly or
// transitively below keysDir.
func (s *KeyFileStore) inKeysDir(path string) bool {
	dir, err := filepath.Abs(s.keysDir)
	if err != nil {
		return false
	}
	p, err := filepath.Abs(s.Resolve(path))
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *KeyFileStore) relative(path string) string {
	rel, err := filepath.Rel(s.baseDir, path)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return rel
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Compile-time assertion that KeyFileStore implements domain.KeyFileStore.
var _ domain.KeyFileStore = (*KeyFileStore)(nil)
