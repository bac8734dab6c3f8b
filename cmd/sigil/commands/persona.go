package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"sigil/internal/domain"
)

// generate <name> --suite N: create a persona.
func generateCmd() *cobra.Command {
	var suite uint8
	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Create a persona with a fresh key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.SuiteID(suite)
			if _, err := id.Descriptor(); err != nil {
				return fmt.Errorf("%w (see 'sigil algorithms')", err)
			}
			pass, err := secret(cmd, true, true)
			if err != nil {
				return err
			}
			s, err := appCtx.Wallet.Create(args[0], id, pass)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persona %q created with suite %s.\n", s.Name(), id)
			fmt.Fprintf(out, "Fingerprint: %s\n", s.Fingerprint())
			if len(pass) == 0 {
				fmt.Fprintln(out, "Warning: private key stored without a passphrase.")
			}
			s.Wipe()
			return nil
		},
	}
	cmd.Flags().Uint8Var(&suite, "suite", uint8(domain.SuiteDilithium2SHA256), "cipher suite id (see 'sigil algorithms')")
	return cmd
}

// remove <name>: delete a persona and both key files.
func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a persona and its key files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := appCtx.Wallet.Remove(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persona %q removed from wallet.\n", args[0])
			fmt.Fprintf(out, "  private key %s: %s\n", report.PrivateKeyPath, outcome(report.PrivateKeyErr))
			fmt.Fprintf(out, "  public key  %s: %s\n", report.PublicKeyPath, outcome(report.PublicKeyErr))
			return report.Err()
		},
	}
}

func outcome(err error) string {
	if err != nil {
		return "NOT removed (" + err.Error() + ")"
	}
	return "removed"
}

// personas: list wallet entries.
func personasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List wallet personas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := appCtx.Wallet.List()
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No personas.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSUITE\tENCRYPTED\tFINGERPRINT\tCREATED")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					p.Name, p.SuiteID, strconv.FormatBool(p.Encrypted), p.Fingerprint,
					time.Unix(p.CreatedAt, 0).UTC().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

// fingerprint <name>: print the persona's public key fingerprint.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <name>",
		Short: "Print a persona's public key fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok, err := appCtx.Wallet.Verifier(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrPersonaNotFound, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", s.Fingerprint())
			return nil
		},
	}
}
