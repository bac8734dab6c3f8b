package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sigil/internal/domain"
	"sigil/internal/files"
)

// list-signatures [dir]: files carrying a signed-file header.
func listSignaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "list-signatures [dir]",
		Short:       "List signed files in a directory",
		Args:        cobra.MaximumNArgs(1),
		Annotations: noWallet,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := files.Signed(dirArg(args))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No signed files.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tSUITE\tPAYLOAD")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Path, e.Header.SuiteID, e.Header.PayloadLength)
			}
			return tw.Flush()
		},
	}
}

// list-files [dir]: files without a signed-file header.
func listFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "list-files [dir]",
		Short:       "List unsigned files in a directory",
		Args:        cobra.MaximumNArgs(1),
		Annotations: noWallet,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := files.Unsigned(dirArg(args))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No unsigned files.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", e.Path, e.Size)
			}
			return nil
		},
	}
}

func dirArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

type suiteRow struct {
	ID          uint8  `yaml:"id"`
	Algorithm   string `yaml:"algorithm"`
	Hash        string `yaml:"hash"`
	PostQuantum bool   `yaml:"post_quantum"`
}

// algorithms [--format text|yaml]: the cipher suite table.
func algorithmsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:         "algorithms",
		Short:       "Print the supported cipher suites",
		Args:        cobra.NoArgs,
		Annotations: noWallet,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []suiteRow
			for _, id := range domain.SupportedSuites() {
				d, err := id.Descriptor()
				if err != nil {
					return err
				}
				rows = append(rows, suiteRow{
					ID:          uint8(id),
					Algorithm:   d.Algorithm.String(),
					Hash:        d.Hash.String(),
					PostQuantum: d.Algorithm.PostQuantum(),
				})
			}

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(map[string][]suiteRow{"suites": rows}); err != nil {
					return err
				}
				return enc.Close()
			case "text", "":
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tALGORITHM\tHASH\tPOST-QUANTUM")
				for _, r := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", r.ID, r.Algorithm, r.Hash, r.PostQuantum)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}

// hash <file> [--algo name]: print a file digest.
func hashCmd() *cobra.Command {
	var algo string
	cmd := &cobra.Command{
		Use:         "hash <file>",
		Short:       "Print a file digest",
		Args:        cobra.ExactArgs(1),
		Annotations: noWallet,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := domain.ParseHashID(algo)
			if err != nil {
				return err
			}
			sum, err := files.Hash(args[0], h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", sum, args[0], h)
			return nil
		},
	}
	cmd.Flags().StringVar(&algo, "algo", "sha256", "hash function: sha256, sha384, sha512, sha3-256, blake2b-256")
	return cmd
}
