package jwtclaims

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptor(t *testing.T) {
	verifier, secret := newTestVerifier(t)
	interceptor := UnaryServerInterceptor(verifier)
	info := &grpc.UnaryServerInfo{FullMethod: "/ticketbox.events.v1.EventService/ListEvents"}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		claims := MustGetClaims(ctx)
		requestID, _ := GetRequestID(ctx)
		return claims.Subject + "/" + requestID, nil
	}

	valid := signHS256(t, secret, ticketClaims(time.Now().Add(time.Hour), "USER"))

	tests := []struct {
		name     string
		md       metadata.MD
		wantResp string
		wantMsg  string
	}{
		{
			name:     "valid token",
			md:       metadata.Pairs("authorization", "Bearer "+valid, "x-request-id", "req-9"),
			wantResp: "42/req-9",
		},
		{
			name:    "no metadata",
			wantMsg: "MISSING_TOKEN",
		},
		{
			name:    "forged token",
			md:      metadata.Pairs("authorization", "Bearer "+unsignedToken(samplePayload)),
			wantMsg: "INVALID_SIGNATURE",
		},
		{
			name:    "bad scheme",
			md:      metadata.Pairs("authorization", "Basic abc"),
			wantMsg: "MALFORMED_AUTH_HEADER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			resp, err := interceptor(ctx, nil, info, handler)
			if tt.wantMsg != "" {
				require.Error(t, err)
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Equal(t, tt.wantMsg, st.Message())
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResp, resp)
		})
	}
}
