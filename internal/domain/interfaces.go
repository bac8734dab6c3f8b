package domain

// WalletStore persists the wallet document.
type WalletStore interface {
	// LoadWallet reads the document; a missing file is an error.
	LoadWallet() (WalletFile, error)
	// SaveWallet replaces the document atomically.
	SaveWallet(w WalletFile) error
	// Dir is the directory relative key paths resolve against.
	Dir() string
}

// KeyFileStore reads and writes per-persona key artifacts.
type KeyFileStore interface {
	// WriteKeys stores both artifacts and returns their wallet-relative paths.
	WriteKeys(name string, privateBlob, public []byte) (privPath, pubPath string, err error)
	ReadPrivate(path string) ([]byte, error)
	ReadPublic(path string) ([]byte, error)
	// RemoveKeys deletes both artifacts, reporting each independently.
	RemoveKeys(privPath, pubPath string) RemovalReport
}
