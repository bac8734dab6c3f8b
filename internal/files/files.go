package files

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"sigil/internal/crypto"
	"sigil/internal/domain"
	"sigil/internal/signedfile"
)

// Entry is one regular file found in a scanned directory.
type Entry struct {
	Path   string
	Size   int64
	Signed bool
	Header signedfile.Header // zero unless Signed
}

// Scan lists the regular files directly inside dir, sorted by name, and
// classifies each by whether it carries a well-formed signed-file header.
// Unreadable files are skipped.
func Scan(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	var out []Entry
	for _, de := range des {
		if !de.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		info, err := de.Info()
		if err != nil {
			continue
		}
		h, signed, err := signedfile.Inspect(path)
		if err != nil {
			continue
		}
		out = append(out, Entry{Path: path, Size: info.Size(), Signed: signed, Header: h})
	}
	return out, nil
}

// Signed returns the entries of dir that carry a signature header.
func Signed(dir string) ([]Entry, error) { return filter(dir, true) }

// Unsigned returns the entries of dir without a signature header.
func Unsigned(dir string) ([]Entry, error) { return filter(dir, false) }

func filter(dir string, signed bool) ([]Entry, error) {
	all, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, e := range all {
		if e.Signed == signed {
			out = append(out, e)
		}
	}
	return out, nil
}

// Hash returns the hex digest of the file at path.
func Hash(path string, h domain.HashID) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	defer f.Close()

	sum, err := crypto.DigestReader(h, f)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}
