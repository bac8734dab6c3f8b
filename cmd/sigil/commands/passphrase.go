package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sigil/internal/app"
)

// secret resolves the passphrase from the flag or SIGIL_PASSPHRASE. When
// neither is set and prompt is true, it asks on the terminal if the command's input is one.
// confirm asks twice. An empty result means no passphrase.
func secret(cmd *cobra.Command, prompt, confirm bool) ([]byte, error) {
	if p := v.GetString(app.KeyPassphrase); p != "" {
		return []byte(p), nil
	}
	if !prompt {
		return nil, nil
	}
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return nil, nil
	}
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}

	first, err := readPassword(cmd, fd, "Passphrase: ")
	if err != nil {
		return nil, err
	}
	if confirm && len(first) > 0 {
		again, err := readPassword(cmd, fd, "Repeat passphrase: ")
		if err != nil {
			return nil, err
		}
		if string(first) != string(again) {
			return nil, fmt.Errorf("passphrases do not match")
		}
	}
	return first, nil
}

func readPassword(cmd *cobra.Command, fd int, label string) ([]byte, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return b, nil
}
