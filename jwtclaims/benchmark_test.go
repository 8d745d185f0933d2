package jwtclaims

import (
	"testing"
	"time"
)

func BenchmarkDecode(b *testing.B) {
	cfg, _ := NewConfig(WithLogger(nil))
	codec := NewCodec(cfg)
	token := unsignedToken(samplePayload)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Decode(token); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIsExpired_Malformed(b *testing.B) {
	cfg, _ := NewConfig(WithLogger(nil))
	codec := NewCodec(cfg)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = codec.IsExpired("not-a-token")
	}
}

func BenchmarkVerifyHS256(b *testing.B) {
	secret := newSecret(b)
	cfg, _ := NewConfig(WithHS256(secret), WithLogger(nil))
	verifier, err := NewVerifier(cfg)
	if err != nil {
		b.Fatal(err)
	}
	token := signHS256(b, secret, ticketClaims(time.Now().Add(time.Hour), "USER"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := verifier.Verify(token); err != nil {
			b.Fatal(err)
		}
	}
}
