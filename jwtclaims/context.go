package jwtclaims

import "context"

type contextKey string

const (
	claimsContextKey    contextKey = "github.com/ticketbox/ticketbox-jwt-go/jwtclaims:claims"
	sessionContextKey   contextKey = "github.com/ticketbox/ticketbox-jwt-go/jwtclaims:session"
	requestIDContextKey contextKey = "github.com/ticketbox/ticketbox-jwt-go/jwtclaims:request_id"
)

// Session is what SessionHint learned from an unverified token.
// Claims is nil when there was no token or it could not be decoded.
type Session struct {
	Claims  *Claims
	Expired bool
	Reason  ErrorCode // why Expired is true, empty otherwise
}

// SignedIn reports whether the request carries a decodable, unexpired token.
// It says nothing about whether the token is genuine.
func (s Session) SignedIn() bool {
	return s.Claims != nil && !s.Expired
}

// WithClaims stores verified claims in the context.
// Claims are shared and must not be modified by downstream handlers.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// GetClaims retrieves verified claims stored by JWTAuth or UnaryServerInterceptor.
// Claims decoded by SessionHint are never returned here.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// MustGetClaims retrieves claims from context and panics if not present.
// Use only behind JWTAuth or UnaryServerInterceptor.
func MustGetClaims(ctx context.Context) *Claims {
	claims, ok := GetClaims(ctx)
	if !ok {
		panic("jwtclaims: claims not found in context")
	}
	return claims
}

// WithSession stores an unverified session hint in the context
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSession retrieves the hint stored by SessionHint
func GetSession(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// WithRequestID stores a request ID in context for correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
