package ciphersuite_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sigil/internal/ciphersuite"
	"sigil/internal/domain"
	"sigil/internal/signedfile"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEverySuiteDispatches(t *testing.T) {
	for _, id := range domain.SupportedSuites() {
		desc, err := id.Descriptor()
		require.NoError(t, err)
		require.Equal(t, id, desc.ID)
		require.True(t, desc.Hash.Valid())

		s, err := ciphersuite.Generate("probe", id)
		require.NoError(t, err, id.String())
		require.Equal(t, id, s.ID())
		require.True(t, s.HasPrivateKey())
		require.NotEmpty(t, s.PublicKeyBytes())
	}
}

func TestGenerate_Unsupported(t *testing.T) {
	for _, id := range []domain.SuiteID{0, 6, 255} {
		_, err := ciphersuite.Generate("x", id)
		require.ErrorIs(t, err, domain.ErrUnsupportedCipherSuite)
	}
}

func TestSignVerifyStrip_AllSuites(t *testing.T) {
	for _, id := range domain.SupportedSuites() {
		t.Run(id.String(), func(t *testing.T) {
			dir := t.TempDir()
			content := []byte("Test content")
			in := writeFile(t, dir, "test_file.txt", content)
			out := filepath.Join(dir, "signed_test_file.txt")

			s, err := ciphersuite.Generate("test", id)
			require.NoError(t, err)

			h, err := s.Sign(in, out)
			require.NoError(t, err)
			require.Equal(t, id, h.SuiteID)

			vh, err := s.Verify(out)
			require.NoError(t, err)
			require.Equal(t, id, vh.SuiteID)
			desc, _ := id.Descriptor()
			require.Equal(t, desc.Hash, vh.HashID)

			stripped := filepath.Join(dir, "stripped.txt")
			_, err = signedfile.RemoveSignature(out, stripped)
			require.NoError(t, err)
			got, err := os.ReadFile(stripped)
			require.NoError(t, err)
			require.True(t, bytes.Equal(content, got), "round trip changed payload")
		})
	}
}

func TestVerify_BitFlipInSignature(t *testing.T) {
	for _, id := range domain.SupportedSuites() {
		t.Run(id.String(), func(t *testing.T) {
			dir := t.TempDir()
			in := writeFile(t, dir, "in.txt", []byte("Test content"))
			out := filepath.Join(dir, "in.txt.sig")

			s, err := ciphersuite.Generate("flip", id)
			require.NoError(t, err)
			h, err := s.Sign(in, out)
			require.NoError(t, err)

			signed, err := os.ReadFile(out)
			require.NoError(t, err)

			// Signature bytes start after the 11-byte prefix.
			sigStart := 11
			for _, off := range []int{0, len(h.Signature) / 2, len(h.Signature) - 1} {
				corrupt := append([]byte(nil), signed...)
				corrupt[sigStart+off] ^= 0x01
				path := filepath.Join(dir, "corrupt.sig")
				require.NoError(t, os.WriteFile(path, corrupt, 0o644))

				_, err := s.Verify(path)
				require.ErrorIs(t, err, domain.ErrVerificationFailed, "offset %d", off)
				require.NotErrorIs(t, err, domain.ErrMalformedHeader)
			}
		})
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", []byte("Test content"))
	out := filepath.Join(dir, "in.txt.sig")

	s, err := ciphersuite.Generate("tamper", domain.SuiteDilithium2SHA512)
	require.NoError(t, err)
	_, err = s.Sign(in, out)
	require.NoError(t, err)

	signed, err := os.ReadFile(out)
	require.NoError(t, err)
	signed[len(signed)-1] ^= 0x20
	require.NoError(t, os.WriteFile(out, signed, 0o644))

	_, err = s.Verify(out)
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestVerify_UnsupportedSuiteByte(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", []byte("Test content"))
	out := filepath.Join(dir, "in.txt.sig")

	s, err := ciphersuite.Generate("alice", domain.SuiteDilithium2SHA256)
	require.NoError(t, err)
	_, err = s.Sign(in, out)
	require.NoError(t, err)
	_, err = s.Verify(out)
	require.NoError(t, err)

	signed, err := os.ReadFile(out)
	require.NoError(t, err)
	signed[5] = 0x7F
	require.NoError(t, os.WriteFile(out, signed, 0o644))

	_, err = s.Verify(out)
	require.ErrorIs(t, err, domain.ErrMalformedHeader)
	require.NotErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestVerify_OtherPersonaOrSuite(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", []byte("Test content"))
	out := filepath.Join(dir, "in.txt.sig")

	alice, err := ciphersuite.Generate("alice", domain.SuiteFalcon512SHA256)
	require.NoError(t, err)
	_, err = alice.Sign(in, out)
	require.NoError(t, err)

	bob, err := ciphersuite.Generate("bob", domain.SuiteFalcon512SHA256)
	require.NoError(t, err)
	_, err = bob.Verify(out)
	require.ErrorIs(t, err, domain.ErrVerificationFailed)

	carol, err := ciphersuite.Generate("carol", domain.SuiteRSASHA256)
	require.NoError(t, err)
	_, err = carol.Verify(out)
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestVerify_PlainFileIsMalformed(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "plain.txt", []byte("Test content"))
	s, err := ciphersuite.Generate("alice", domain.SuiteDilithium2SHA256)
	require.NoError(t, err)
	_, err = s.Verify(plain)
	require.ErrorIs(t, err, domain.ErrMalformedHeader)
}

func TestVerifyOnlySuite(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", []byte("Test content"))
	out := filepath.Join(dir, "in.txt.sig")

	full, err := ciphersuite.Generate("alice", domain.SuiteRSASHA256)
	require.NoError(t, err)
	_, err = full.Sign(in, out)
	require.NoError(t, err)

	pubOnly, err := ciphersuite.New("alice", domain.SuiteRSASHA256, full.PublicKeyBytes(), nil)
	require.NoError(t, err)
	require.False(t, pubOnly.HasPrivateKey())
	_, err = pubOnly.Verify(out)
	require.NoError(t, err)

	_, err = pubOnly.Sign(in, filepath.Join(dir, "again.sig"))
	require.ErrorIs(t, err, domain.ErrKeyUnavailable)
	_, err = pubOnly.PrivateKeyBytes()
	require.ErrorIs(t, err, domain.ErrKeyUnavailable)
}

func TestSign_MissingInput(t *testing.T) {
	s, err := ciphersuite.Generate("alice", domain.SuiteDilithium2SHA256)
	require.NoError(t, err)
	_, err = s.Sign(filepath.Join(t.TempDir(), "absent"), filepath.Join(t.TempDir(), "out"))
	require.ErrorIs(t, err, domain.ErrIO)
}

func TestWipe(t *testing.T) {
	s, err := ciphersuite.Generate("alice", domain.SuiteFalcon512SHA512)
	require.NoError(t, err)
	priv, err := s.PrivateKeyBytes()
	require.NoError(t, err)
	s.Wipe()
	require.False(t, s.HasPrivateKey())
	require.Equal(t, make([]byte, len(priv)), priv)
}
