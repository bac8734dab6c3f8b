package crypto_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"sigil/internal/crypto"
	"sigil/internal/domain"
)

func TestDigest_KnownVectors(t *testing.T) {
	cases := []struct {
		h    domain.HashID
		want string
	}{
		{domain.HashSHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{domain.HashSHA384, "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{domain.HashSHA512, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{domain.HashSHA3_256, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	}
	for _, tc := range cases {
		got, err := crypto.Digest(tc.h, []byte("abc"))
		require.NoError(t, err, tc.h.String())
		require.Equal(t, tc.want, hex.EncodeToString(got), tc.h.String())

		streamed, err := crypto.DigestReader(tc.h, bytes.NewReader([]byte("abc")))
		require.NoError(t, err)
		require.Equal(t, got, streamed)
	}

	sum, err := crypto.Digest(domain.HashBLAKE2b256, []byte("abc"))
	require.NoError(t, err)
	require.Len(t, sum, 32)
}

func TestDigest_UnknownHash(t *testing.T) {
	_, err := crypto.Digest(domain.HashID(0), []byte("abc"))
	require.Error(t, err)
	_, err = crypto.CryptoHash(domain.HashID(99))
	require.Error(t, err)
}

func TestAlgorithms_SignVerify(t *testing.T) {
	for _, id := range []domain.AlgorithmID{
		domain.AlgorithmDilithium2,
		domain.AlgorithmFalcon512,
		domain.AlgorithmRSA2048,
	} {
		t.Run(id.String(), func(t *testing.T) {
			alg, err := crypto.AlgorithmFor(id)
			require.NoError(t, err)
			require.Equal(t, id, alg.ID())

			pub, priv, err := alg.GenerateKey(rand.Reader)
			require.NoError(t, err)
			require.NotEmpty(t, pub)
			require.NotEmpty(t, priv)

			digest, err := crypto.Digest(domain.HashSHA256, []byte("payload"))
			require.NoError(t, err)

			sig, err := alg.Sign(priv, digest, domain.HashSHA256)
			require.NoError(t, err)
			require.True(t, alg.Verify(pub, digest, sig, domain.HashSHA256))

			bad := append([]byte(nil), sig...)
			bad[len(bad)/2] ^= 0x01
			require.False(t, alg.Verify(pub, digest, bad, domain.HashSHA256), "tampered signature accepted")

			other, err := crypto.Digest(domain.HashSHA256, []byte("other payload"))
			require.NoError(t, err)
			require.False(t, alg.Verify(pub, other, sig, domain.HashSHA256), "signature accepted for other digest")

			require.False(t, alg.Verify(pub[:len(pub)-1], digest, sig, domain.HashSHA256), "truncated key accepted")
			require.False(t, alg.Verify(pub, digest, sig[:len(sig)-1], domain.HashSHA256), "truncated signature accepted")
		})
	}
}

func TestAlgorithmFor_Unsupported(t *testing.T) {
	_, err := crypto.AlgorithmFor(domain.AlgorithmID(42))
	require.ErrorIs(t, err, domain.ErrUnsupportedCipherSuite)
}

func TestFingerprint_Stable(t *testing.T) {
	a := crypto.Fingerprint([]byte("public key"))
	require.Equal(t, a, crypto.Fingerprint([]byte("public key")))
	require.NotEqual(t, a, crypto.Fingerprint([]byte("other key")))
}
