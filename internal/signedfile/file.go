package signedfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"sigil/internal/domain"
	"sigil/internal/util/fsutil"
)

// Extension is appended to signed outputs when no output path is given.
const Extension = ".sig"

// DefaultSignedPath returns the conventional output path for signing input.
func DefaultSignedPath(input string) string {
	return input + Extension
}

// DefaultStrippedPath returns the conventional output path when removing the
// signature from input: the ".sig" suffix is dropped, otherwise ".unsigned"
// is appended.
func DefaultStrippedPath(input string) string {
	if trimmed, ok := strings.CutSuffix(input, Extension); ok && trimmed != "" {
		return trimmed
	}
	return input + ".unsigned"
}

// ReadFile reads and decodes the signed file at path.
func ReadFile(path string) (Header, []byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: read %s: %w", domain.ErrIO, path, err)
	}
	return Decode(buf)
}

// WriteFile encodes and atomically writes a signed file to path.
func WriteFile(path string, h Header, payload []byte) (Header, error) {
	buf, err := Encode(h, payload)
	if err != nil {
		return Header{}, err
	}
	if err := fsutil.WriteFileAtomic(path, buf, 0o644); err != nil {
		return Header{}, fmt.Errorf("%w: write %s: %w", domain.ErrIO, path, err)
	}
	h.Version = FormatVersion
	h.PayloadLength = uint64(len(payload))
	return h, nil
}

// RemoveSignature writes the payload of the signed file at input to output.
// The signature itself is not checked.
func RemoveSignature(input, output string) (Header, error) {
	h, payload, err := ReadFile(input)
	if err != nil {
		return Header{}, err
	}
	info, err := os.Stat(input)
	if err != nil {
		return Header{}, fmt.Errorf("%w: stat %s: %w", domain.ErrIO, input, err)
	}
	if err := fsutil.WriteFileAtomic(output, payload, info.Mode().Perm()); err != nil {
		return Header{}, fmt.Errorf("%w: write %s: %w", domain.ErrIO, output, err)
	}
	return h, nil
}

// Inspect reports whether the file at path carries a well-formed header whose
// declared payload length matches the file size. Only the header is read.
func Inspect(path string) (Header, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, false, fmt.Errorf("%w: open %s: %w", domain.ErrIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Header{}, false, fmt.Errorf("%w: stat %s: %w", domain.ErrIO, path, err)
	}
	h, err := Peek(f)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedHeader) {
			return Header{}, false, nil
		}
		return Header{}, false, err
	}
	if uint64(info.Size()) != uint64(h.Size())+h.PayloadLength {
		return Header{}, false, nil
	}
	return h, true, nil
}
