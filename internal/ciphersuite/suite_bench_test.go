package ciphersuite_test

import (
	"bytes"
	"fmt"
	"testing"

	"sigil/internal/ciphersuite"
	"sigil/internal/domain"
)

// Keygen, sign and verify cost per suite, with public key and signature
// sizes reported as custom metrics.
func BenchmarkSuites(b *testing.B) {
	payload := bytes.Repeat([]byte("Test content"), 1024)
	for _, id := range domain.SupportedSuites() {
		desc, _ := id.Descriptor()
		label := fmt.Sprintf("cs%d_%s_%s", id, desc.Algorithm, desc.Hash)

		b.Run(label+"/keygen", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := ciphersuite.Generate("bench", id); err != nil {
					b.Fatal(err)
				}
			}
		})

		s, err := ciphersuite.Generate("bench", id)
		if err != nil {
			b.Fatal(err)
		}
		sig, err := s.SignBytes(payload)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(label+"/sign", func(b *testing.B) {
			b.ReportMetric(float64(len(s.PublicKeyBytes())), "pk-bytes")
			b.ReportMetric(float64(len(sig)), "sig-bytes")
			for i := 0; i < b.N; i++ {
				if _, err := s.SignBytes(payload); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(label+"/verify", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if err := s.VerifyBytes(payload, desc.Hash, sig); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
