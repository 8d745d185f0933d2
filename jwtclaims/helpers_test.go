package jwtclaims

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"sub":"42","exp":9999999999,"iat":1000000000,"userId":42,"organizationId":0,"roles":["USER"],"isOrganization":false}`

var (
	fakeHeader    = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	fakeSignature = base64.RawURLEncoding.EncodeToString([]byte("not-a-real-signature"))
)

// unsignedToken wraps a raw JSON payload in arbitrary header and signature segments
func unsignedToken(payload string) string {
	return fakeHeader + "." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + fakeSignature
}

func tokenWithSegment(segment string) string {
	return fakeHeader + "." + segment + "." + fakeSignature
}

func newSecret(t testing.TB) []byte {
	t.Helper()
	secret := make([]byte, 32)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	return secret
}

func signHS256(t testing.TB, secret []byte, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func ticketClaims(exp time.Time, roles ...string) *Claims {
	return &Claims{
		OrganizationID: 7,
		Roles:          roles,
		UserID:         42,
		IsOrganization: len(roles) > 0 && roles[0] == "ORGANIZER",
		Subject:        "42",
		IssuedAt:       jwt.NewNumericDate(exp.Add(-time.Hour)),
		ExpiresAt:      jwt.NewNumericDate(exp),
	}
}

// captureLogger returns a JSON logger writing into the returned buffer
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

// logLines parses every JSON log record in buf
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var records []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]interface{}
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	return records
}

func fixedClock(t time.Time) ConfigOption {
	return WithClock(func() time.Time { return t })
}
