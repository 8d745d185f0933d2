package jwtclaims

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		cookie     string
		cookieName string
		wantToken  string
		wantCode   ErrorCode
	}{
		{name: "bearer header", header: "Bearer abc.def.ghi", cookieName: "token", wantToken: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "header wins over cookie", header: "Bearer from-header", cookie: "from-cookie", cookieName: "token", wantToken: "from-header"},
		{name: "cookie fallback", cookie: "from-cookie", cookieName: "token", wantToken: "from-cookie"},
		{name: "cookie fallback after bad header", header: "Basic dXNlcg==", cookie: "from-cookie", cookieName: "token", wantToken: "from-cookie"},
		{name: "cookie disabled", cookie: "from-cookie", cookieName: "", wantCode: ErrMissingToken},
		{name: "nothing", cookieName: "token", wantCode: ErrMissingToken},
		{name: "wrong scheme", header: "Basic dXNlcg==", wantCode: ErrMalformedAuthHeader},
		{name: "scheme only", header: "Bearer", wantCode: ErrMalformedAuthHeader},
		{name: "empty token", header: "Bearer   ", wantCode: ErrMissingToken},
		{name: "empty cookie", cookie: " ", cookieName: "token", wantCode: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}

			token, err := TokenFromRequest(req, tt.cookieName)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, CodeOf(err))
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestTokenFromMetadata(t *testing.T) {
	token, err := TokenFromMetadata(metadata.Pairs("authorization", "Bearer abc.def.ghi"))
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromMetadata(metadata.MD{})
	assert.Equal(t, ErrMissingToken, CodeOf(err))

	_, err = TokenFromMetadata(metadata.Pairs("authorization", "Token abc"))
	assert.Equal(t, ErrMalformedAuthHeader, CodeOf(err))
}
