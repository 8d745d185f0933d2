package jwtclaims

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks token signatures and lifetimes. Unlike Codec, its results
// can be trusted for authorization.
type Verifier struct {
	cfg    *Config
	parser *jwt.Parser
}

// NewVerifier builds a verifier from cfg, which must configure at least one algorithm
func NewVerifier(cfg *Config) (*Verifier, error) {
	if cfg == nil || len(cfg.validators) == 0 {
		return nil, NewTokenError(ErrConfigError, "at least one algorithm must be configured (use WithHS256 or WithRS256)", nil)
	}

	parser := jwt.NewParser(
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.ClockSkewLeeway()),
		jwt.WithTimeFunc(cfg.Now),
	)
	return &Verifier{cfg: cfg, parser: parser}, nil
}

// Config returns the verifier's configuration
func (v *Verifier) Config() *Config {
	return v.cfg
}

// Verify checks the signature, algorithm, expiry and required claims of token
// and returns its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, NewTokenError(ErrInvalidSignature, "token is invalid", nil)
	}

	if err := v.validateRequiredClaims(tokenString); err != nil {
		return nil, err
	}
	return claims, nil
}

// keyFunc ensures the token uses a configured algorithm and returns its key
func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	alg, ok := token.Header["alg"].(string)
	if !ok {
		return nil, NewTokenError(ErrMalformedStructure, "missing algorithm in token header", nil)
	}

	if strings.EqualFold(alg, "none") {
		return nil, NewTokenError(ErrNoneAlgorithm, "none algorithm not allowed", nil)
	}

	validator, exists := v.cfg.getValidator(alg)
	if !exists {
		return nil, NewTokenError(
			ErrUnsupportedAlgorithm,
			fmt.Sprintf("algorithm %s not supported (available: %s)", alg, strings.Join(v.cfg.AvailableAlgorithms(), ", ")),
			nil,
		)
	}

	// Guards against HS256 tokens signed with the RS256 public key
	if token.Method.Alg() != validator.signingMethod.Alg() {
		return nil, NewTokenError(
			ErrInvalidSignature,
			fmt.Sprintf("token method %s does not match expected method %s", token.Method.Alg(), validator.signingMethod.Alg()),
			nil,
		)
	}

	return validator.signingKey, nil
}

func classifyParseError(err error) error {
	var tokErr *TokenError
	if errors.As(err, &tokErr) {
		return tokErr
	}

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return NewTokenError(ErrMalformedStructure, "malformed token", err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return NewTokenError(ErrMissingExpiry, "token has no exp claim", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewTokenError(ErrExpired, "token has expired", err)
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return NewTokenError(ErrExpired, "token issued in the future", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return NewTokenError(ErrInvalidSignature, "invalid signature", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return NewTokenError(ErrUnsupportedAlgorithm, "token cannot be verified", err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return NewTokenError(ErrMalformedPayload, "invalid claims", err)
	}
	return NewTokenError(ErrInvalidSignature, "token is invalid", err)
}

// validateRequiredClaims runs after the signature check, so the payload is trusted here
func (v *Verifier) validateRequiredClaims(tokenString string) error {
	required := v.cfg.RequiredClaims()
	if len(required) == 0 {
		return nil
	}

	parts := strings.Split(tokenString, ".")
	raw, err := decodeSegment(parts[1])
	if err != nil {
		return NewTokenError(ErrMalformedEncoding, "payload segment is not valid base64", err)
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return NewTokenError(ErrMalformedPayload, "payload is not a JSON object", err)
	}

	for _, name := range required {
		if _, ok := present[name]; !ok {
			return NewTokenError(ErrMissingClaim, fmt.Sprintf("required claim missing: %s", name), nil)
		}
	}
	return nil
}
