package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config keys, shared by flags, environment variables (SIGIL_ prefix, dashes
// become underscores) and the config file.
const (
	KeyHome       = "home"
	KeyWallet     = "wallet"
	KeyKeysDir    = "keys"
	KeyPassphrase = "passphrase"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyConfig     = "config"
)

const (
	EnvPrefix        = "SIGIL"
	defaultHomeName  = ".sigil"
	defaultWallet    = "wallet.json"
	defaultKeysDir   = "keys"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	configFileName   = "config.yaml"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // config directory, e.g. $HOME/.sigil
	WalletPath string // wallet document, e.g. $HOME/.sigil/wallet.json
	KeysDir    string // key files, e.g. $HOME/.sigil/keys
	LogLevel   string
	LogFormat  string // console or json
}

// NewViper returns a viper instance reading SIGIL_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)
	return v
}

// DefaultHome returns $HOME/.sigil.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultHomeName), nil
}

// LoadConfig resolves Config from v. An explicit config file must exist;
// <home>/config.yaml is read only when present.
func LoadConfig(v *viper.Viper) (Config, error) {
	home := v.GetString(KeyHome)
	if home == "" {
		var err error
		if home, err = DefaultHome(); err != nil {
			return Config{}, err
		}
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		file := filepath.Join(home, configFileName)
		if _, err := os.Stat(file); err == nil {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", file, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Home:       home,
		WalletPath: v.GetString(KeyWallet),
		KeysDir:    v.GetString(KeyKeysDir),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
	}
	if cfg.WalletPath == "" {
		cfg.WalletPath = filepath.Join(home, defaultWallet)
	}
	if cfg.KeysDir == "" {
		cfg.KeysDir = filepath.Join(filepath.Dir(cfg.WalletPath), defaultKeysDir)
	}
	return cfg, nil
}
