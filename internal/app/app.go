package app

import (
	"github.com/rs/zerolog"

	"sigil/internal/services/wallet"
)

// App is what commands operate on: the resolved configuration, the logger
// and a loaded wallet.
type App struct {
	Config Config
	Log    zerolog.Logger
	Wallet *wallet.Service
}

// New wires cfg and loads the wallet, starting empty when no wallet file
// exists yet.
func New(cfg Config, log zerolog.Logger) (*App, error) {
	w := NewWire(cfg, log)
	if err := w.Wallet.LoadOrInit(); err != nil {
		return nil, err
	}
	return &App{Config: cfg, Log: log, Wallet: w.Wallet}, nil
}
