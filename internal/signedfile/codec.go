package signedfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"sigil/internal/domain"
)

const (
	// FormatVersion is the header version written by Encode.
	FormatVersion uint8 = 1

	prefixLen        = 4 + 1 + 1 + 1 + 4
	payloadLenSize   = 8
	maxSignatureSize = 1 << 16
)

var magic = [4]byte{'S', 'G', 'L', 0}

// Header is the decoded framing in front of a signed payload.
type Header struct {
	Version       uint8
	SuiteID       domain.SuiteID
	HashID        domain.HashID
	Signature     []byte
	PayloadLength uint64
}

// Size is the number of bytes the header occupies on disk.
func (h Header) Size() int {
	return prefixLen + len(h.Signature) + payloadLenSize
}

// Encode frames payload behind a header for (h.SuiteID, h.HashID,
// h.Signature). Version and PayloadLength are filled in by Encode.
func Encode(h Header, payload []byte) ([]byte, error) {
	if err := checkIDs(h.SuiteID, h.HashID); err != nil {
		return nil, err
	}
	if len(h.Signature) == 0 || len(h.Signature) > maxSignatureSize {
		return nil, fmt.Errorf("%w: signature length %d", domain.ErrMalformedHeader, len(h.Signature))
	}

	h.Version = FormatVersion
	h.PayloadLength = uint64(len(payload))

	out := make([]byte, 0, h.Size()+len(payload))
	out = append(out, magic[:]...)
	out = append(out, h.Version, byte(h.SuiteID), byte(h.HashID))
	out = binary.BigEndian.AppendUint32(out, uint32(len(h.Signature)))
	out = append(out, h.Signature...)
	out = binary.BigEndian.AppendUint64(out, h.PayloadLength)
	out = append(out, payload...)
	return out, nil
}

// Decode parses buf into its header and payload. The returned payload aliases
// buf.
func Decode(buf []byte) (Header, []byte, error) {
	h, err := Peek(bytes.NewReader(buf))
	if err != nil {
		return Header{}, nil, err
	}
	rest := buf[h.Size():]
	if uint64(len(rest)) != h.PayloadLength {
		return Header{}, nil, fmt.Errorf("%w: declared payload length %d, found %d bytes",
			domain.ErrMalformedHeader, h.PayloadLength, len(rest))
	}
	return h, rest, nil
}

// Peek reads and validates only the header from r, leaving the payload
// unread. It does not check that the declared payload length is present.
func Peek(r io.Reader) (Header, error) {
	var prefix [prefixLen]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Header{}, truncated(err)
	}
	if !bytes.Equal(prefix[:4], magic[:]) {
		return Header{}, fmt.Errorf("%w: bad magic", domain.ErrMalformedHeader)
	}

	h := Header{
		Version: prefix[4],
		SuiteID: domain.SuiteID(prefix[5]),
		HashID:  domain.HashID(prefix[6]),
	}
	if h.Version != FormatVersion {
		return Header{}, fmt.Errorf("%w: unsupported format version %d", domain.ErrMalformedHeader, h.Version)
	}
	if err := checkIDs(h.SuiteID, h.HashID); err != nil {
		return Header{}, err
	}

	sigLen := binary.BigEndian.Uint32(prefix[7:])
	if sigLen == 0 || sigLen > maxSignatureSize {
		return Header{}, fmt.Errorf("%w: signature length %d", domain.ErrMalformedHeader, sigLen)
	}
	h.Signature = make([]byte, sigLen)
	if _, err := io.ReadFull(r, h.Signature); err != nil {
		return Header{}, truncated(err)
	}

	var plen [payloadLenSize]byte
	if _, err := io.ReadFull(r, plen[:]); err != nil {
		return Header{}, truncated(err)
	}
	h.PayloadLength = binary.BigEndian.Uint64(plen[:])
	return h, nil
}

// Strip returns exactly the payload region of a signed buffer.
func Strip(buf []byte) ([]byte, error) {
	_, payload, err := Decode(buf)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func checkIDs(suite domain.SuiteID, hash domain.HashID) error {
	d, err := suite.Descriptor()
	if err != nil {
		return fmt.Errorf("%w: cipher suite id %d", domain.ErrMalformedHeader, uint8(suite))
	}
	if !hash.Valid() {
		return fmt.Errorf("%w: hash function id %d", domain.ErrMalformedHeader, uint8(hash))
	}
	if d.Hash != hash {
		return fmt.Errorf("%w: suite %d pairs with %s, header names %s",
			domain.ErrMalformedHeader, uint8(suite), d.Hash, hash)
	}
	return nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated header", domain.ErrMalformedHeader)
	}
	return fmt.Errorf("%w: %w", domain.ErrIO, err)
}
