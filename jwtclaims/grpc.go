package jwtclaims

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor that verifies
// the bearer token in the authorization metadata
func UnaryServerInterceptor(v *Verifier) grpc.UnaryServerInterceptor {
	cfg := v.Config()
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		startTime := time.Now()

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			md = metadata.MD{}
		}

		requestID := uuid.New().String()
		if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
			requestID = ids[0]
		}

		token, err := TokenFromMetadata(md)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, string(CodeOf(err)))
		}

		claims, err := v.Verify(token)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, string(CodeOf(err)))
		}

		ctx = WithClaims(ctx, claims)
		ctx = WithRequestID(ctx, requestID)

		logAuthSuccess(cfg, requestID, claims, token, time.Since(startTime))
		return handler(ctx, req)
	}
}
