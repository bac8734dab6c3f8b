package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sigil/internal/app"
	"sigil/internal/domain"
)

var (
	v      *viper.Viper
	appCtx *app.App
)

// Execute runs the CLI and prints any error with its kind to stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		printError(root, err)
		return err
	}
	return nil
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	v = app.NewViper()
	appCtx = nil

	root := &cobra.Command{
		Use:           "sigil",
		Short:         "Sign and verify files with post-quantum and classical cipher suites",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoWallet] == "true" {
				return nil
			}
			cfg, err := app.LoadConfig(v)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrIO, err)
			}
			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String(app.KeyHome, "", "config dir (default ~/.sigil)")
	pf.String(app.KeyWallet, "", "wallet file (default <home>/wallet.json)")
	pf.String(app.KeyKeysDir, "", "key file dir (default <wallet dir>/keys)")
	pf.StringP(app.KeyPassphrase, "p", "", "passphrase protecting private keys (or SIGIL_PASSPHRASE)")
	pf.String(app.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	pf.String(app.KeyLogFormat, "console", "log format (console or json)")
	pf.String(app.KeyConfig, "", "config file (default <home>/config.yaml when present)")
	_ = v.BindPFlags(pf)

	root.AddCommand(
		generateCmd(),
		removeCmd(),
		personasCmd(),
		fingerprintCmd(),
		signCmd(),
		verifyCmd(),
		removeSignatureCmd(),
		listSignaturesCmd(),
		listFilesCmd(),
		algorithmsCmd(),
		hashCmd(),
	)
	return root
}

// annotationNoWallet marks commands that run without loading a wallet.
const annotationNoWallet = "sigil/no-wallet"

var noWallet = map[string]string{annotationNoWallet: "true"}

func printError(cmd *cobra.Command, err error) {
	if kind := domain.KindOf(err); kind != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: %v\n", kind, err)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
