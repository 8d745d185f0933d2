package jwtclaims

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Codec decodes token payloads without verifying signatures.
//
// SECURITY: anything Codec returns is attacker-controlled. It exists so pages can
// show who is signed in and notice stale sessions. Authorization decisions must go
// through Verifier.
//
// A Codec holds only its immutable Config and is safe for concurrent use.
type Codec struct {
	cfg *Config
}

// NewCodec returns a codec using cfg, or the default configuration when cfg is nil
func NewCodec(cfg *Config) *Codec {
	if cfg == nil {
		cfg, _ = NewConfig()
	}
	return &Codec{cfg: cfg}
}

// DecodeJWT decodes the payload of token with the default configuration.
// It returns nil on any failure after logging a diagnostic to slog.Default().
// The signature is NOT verified.
func DecodeJWT(token string) *Claims {
	claims, _ := NewCodec(nil).Decode(token)
	return claims
}

// IsTokenExpired reports whether token is expired, treating any token that
// cannot be decoded, or that has no exp claim, as expired.
func IsTokenExpired(token string) bool {
	return NewCodec(nil).IsExpired(token)
}

// Decode splits token into header.payload.signature and decodes the payload
// into Claims. Header and signature are only counted, never read.
//
// The signature is NOT verified; see Verifier.
//
// On failure the returned error is a *TokenError with code
// MALFORMED_STRUCTURE, MALFORMED_ENCODING or MALFORMED_PAYLOAD, and a
// diagnostic is logged.
func (c *Codec) Decode(token string) (*Claims, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		logTokenEvent(c.cfg.Logger(), TokenEvent{
			EventType:     eventDecodeFailure,
			FailureReason: CodeOf(err),
			Cause:         errors.Unwrap(err),
			TokenPreview:  token,
		})
		return nil, err
	}
	return claims, nil
}

// IsExpired decodes token and reports whether it has expired.
// Decode failures and a missing exp claim both count as expired.
func (c *Codec) IsExpired(token string) bool {
	claims, err := c.Decode(token)
	if err != nil {
		return true
	}

	if err := c.CheckExpiry(claims); err != nil {
		if CodeOf(err) == ErrMissingExpiry {
			logTokenEvent(c.cfg.Logger(), TokenEvent{
				EventType:     eventDecodeFailure,
				UserID:        claims.Subject,
				FailureReason: ErrMissingExpiry,
				TokenPreview:  token,
			})
		}
		return true
	}
	return false
}

// Expired reports whether already decoded claims have expired
func (c *Codec) Expired(claims *Claims) bool {
	return c.CheckExpiry(claims) != nil
}

// CheckExpiry returns nil while claims are within their lifetime, and an
// EXPIRED or MISSING_EXPIRY_CLAIM TokenError otherwise. The token counts as
// expired once exp plus the configured skew is strictly before now.
func (c *Codec) CheckExpiry(claims *Claims) error {
	if claims == nil {
		return NewTokenError(ErrMalformedPayload, "no claims", nil)
	}
	if claims.ExpiresAt == nil {
		if c.cfg.PermissiveExpiry() {
			return nil
		}
		return NewTokenError(ErrMissingExpiry, "token has no exp claim", nil)
	}
	if claims.ExpiresAt.Add(c.cfg.ClockSkewLeeway()).Before(c.cfg.Now()) {
		return NewTokenError(ErrExpired, fmt.Sprintf("token expired at %v", claims.ExpiresAt.Time), nil)
	}
	return nil
}

func decodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, NewTokenError(ErrMalformedStructure, fmt.Sprintf("expected 3 segments, got %d", len(parts)), nil)
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil, NewTokenError(ErrMalformedEncoding, "payload segment is not valid base64", err)
	}

	if trimmed := bytes.TrimLeft(raw, " \t\r\n"); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, NewTokenError(ErrMalformedPayload, "payload is not a JSON object", nil)
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, NewTokenError(ErrMalformedPayload, "payload does not match claims", err)
	}
	return &claims, nil
}

// decodeSegment maps the base64url alphabet onto the standard one and decodes
// the result the way browsers' atob does: whitespace is dropped and padding is
// optional, but at most two trailing '=' are accepted.
func decodeSegment(seg string) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '-':
			return '+'
		case '_':
			return '/'
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, seg)

	if len(s)%4 == 0 {
		s = strings.TrimSuffix(s, "=")
		s = strings.TrimSuffix(s, "=")
	}
	if len(s)%4 == 1 {
		return nil, errors.New("invalid base64 length")
	}
	return base64.RawStdEncoding.DecodeString(s)
}
