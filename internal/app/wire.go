package app

import (
	"github.com/rs/zerolog"

	"sigil/internal/services/wallet"
	"sigil/internal/store"
)

// Wire bundles the stores and services for the CLI.
type Wire struct {
	Wallets *store.WalletFileStore
	Keys    *store.KeyFileStore
	Wallet  *wallet.Service
}

// NewWire constructs the dependency graph from cfg. Nothing touches disk
// until the wallet is loaded.
func NewWire(cfg Config, log zerolog.Logger) *Wire {
	ws := store.NewWalletFileStore(cfg.WalletPath)
	keys := store.NewKeyFileStore(ws.Dir(), cfg.KeysDir)
	return &Wire{
		Wallets: ws,
		Keys:    keys,
		Wallet:  wallet.New(ws, keys, log),
	}
}
