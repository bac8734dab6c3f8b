package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/domain"
	"sigil/internal/signedfile"
)

// sign <name> <file> [-o out]: write a signed copy of file.
func signCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sign <name> <file>",
		Short: "Sign a file with a persona's private key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, input := args[0], args[1]
			p, ok := appCtx.Wallet.Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrPersonaNotFound, name)
			}
			var pass []byte
			if p.Encrypted {
				var err error
				if pass, err = secret(cmd, true, false); err != nil {
					return err
				}
			}
			s, _, err := appCtx.Wallet.Get(name, pass)
			if err != nil {
				return err
			}
			defer s.Wipe()

			if output == "" {
				output = signedfile.DefaultSignedPath(input)
			}
			h, err := s.Sign(input, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed %s -> %s as %q (suite %s, %d-byte signature).\n",
				input, output, name, h.SuiteID, len(h.Signature))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "signed output path (default <file>.sig)")
	return cmd
}

// verify <name> <file>: check the inline signature of file.
func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <name> <file>",
		Short: "Verify a signed file against a persona's public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, input := args[0], args[1]
			s, ok, err := appCtx.Wallet.Verifier(name)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrPersonaNotFound, name)
			}
			h, err := s.Verify(input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signature OK: %s was signed by %q (suite %s, %d payload bytes).\n",
				input, name, h.SuiteID, h.PayloadLength)
			return nil
		},
	}
}

// remove-signature <file> [-o out]: recover the original bytes.
func removeSignatureCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:         "remove-signature <file>",
		Short:       "Strip the signature header, restoring the original file",
		Args:        cobra.ExactArgs(1),
		Annotations: noWallet,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = signedfile.DefaultStrippedPath(input)
			}
			h, err := signedfile.RemoveSignature(input, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signature removed: %s -> %s (%d bytes).\n", input, output, h.PayloadLength)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: drop .sig, else append .unsigned)")
	return cmd
}
