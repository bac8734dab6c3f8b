package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sigil/internal/app"
	"sigil/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	v := app.NewViper()
	v.Set(app.KeyHome, home)

	cfg, err := app.LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, home, cfg.Home)
	require.Equal(t, filepath.Join(home, "wallet.json"), cfg.WalletPath)
	require.Equal(t, filepath.Join(home, "keys"), cfg.KeysDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfig_FileInHome(t *testing.T) {
	home := t.TempDir()
	other := filepath.Join(t.TempDir(), "w.json")
	yaml := "wallet: " + other + "\nlog-level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600))

	v := app.NewViper()
	v.Set(app.KeyHome, home)
	cfg, err := app.LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, other, cfg.WalletPath)
	require.Equal(t, filepath.Join(filepath.Dir(other), "keys"), cfg.KeysDir)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_ExplicitFileMustExist(t *testing.T) {
	v := app.NewViper()
	v.Set(app.KeyHome, t.TempDir())
	v.Set(app.KeyConfig, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := app.LoadConfig(v)
	require.Error(t, err)
}

func TestLoadConfig_Env(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SIGIL_HOME", home)
	t.Setenv("SIGIL_LOG_FORMAT", "json")

	cfg, err := app.LoadConfig(app.NewViper())
	require.NoError(t, err)
	require.Equal(t, home, cfg.Home)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := app.NewLogger(&buf, "warn", "json")
	require.NoError(t, err)
	log.Info().Msg("hidden")
	log.Warn().Str("persona", "alice").Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"persona":"alice"`)

	_, err = app.NewLogger(&buf, "loud", "json")
	require.Error(t, err)
	_, err = app.NewLogger(&buf, "info", "xml")
	require.Error(t, err)
}

func TestNew_StartsEmptyAndPersists(t *testing.T) {
	home := t.TempDir()
	cfg := app.Config{
		Home:       home,
		WalletPath: filepath.Join(home, "wallet.json"),
		KeysDir:    filepath.Join(home, "keys"),
	}
	a, err := app.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Empty(t, a.Wallet.List())

	_, err = a.Wallet.Create("alice", domain.SuiteRSASHA256, nil)
	require.NoError(t, err)

	b, err := app.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, b.Wallet.List(), 1)
}

func TestNew_CorruptWallet(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	_, err := app.New(app.Config{Home: home, WalletPath: path, KeysDir: filepath.Join(home, "keys")}, zerolog.Nop())
	require.ErrorIs(t, err, domain.ErrWalletLoad)
}
