package jwtclaims

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

// TokenFromRequest returns the bearer token of r. The Authorization header wins;
// the cookie named cookieName is the fallback the web client relies on.
// An empty cookieName disables the fallback.
func TokenFromRequest(r *http.Request, cookieName string) (string, error) {
	token, err := tokenFromHeader(r.Header.Get("Authorization"))
	if err == nil {
		return token, nil
	}

	if cookieName != "" {
		if token, cookieErr := tokenFromCookie(r, cookieName); cookieErr == nil {
			return token, nil
		}
	}

	return "", err
}

// TokenFromMetadata returns the bearer token carried in gRPC metadata
func TokenFromMetadata(md metadata.MD) (string, error) {
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", NewTokenError(ErrMissingToken, "authorization metadata not found", nil)
	}
	return tokenFromHeader(values[0])
}

// tokenFromHeader parses "Bearer <token>"
func tokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", NewTokenError(ErrMissingToken, "authorization header not found", nil)
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", NewTokenError(ErrMalformedAuthHeader, "invalid authorization header format, expected 'Bearer <token>'", nil)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", NewTokenError(ErrMissingToken, "token is empty", nil)
	}
	return token, nil
}

func tokenFromCookie(r *http.Request, cookieName string) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", NewTokenError(ErrMissingToken, "cookie not found", err)
	}

	token := strings.TrimSpace(cookie.Value)
	if token == "" {
		return "", NewTokenError(ErrMissingToken, "cookie value is empty", nil)
	}
	return token, nil
}
