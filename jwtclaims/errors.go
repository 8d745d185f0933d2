package jwtclaims

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a token could not be decoded or verified
type ErrorCode string

const (
	// Decode failures
	ErrMalformedStructure ErrorCode = "MALFORMED_STRUCTURE"
	ErrMalformedEncoding  ErrorCode = "MALFORMED_ENCODING"
	ErrMalformedPayload   ErrorCode = "MALFORMED_PAYLOAD"
	ErrMissingExpiry      ErrorCode = "MISSING_EXPIRY_CLAIM"

	// Verification and extraction failures
	ErrExpired              ErrorCode = "EXPIRED"
	ErrInvalidSignature     ErrorCode = "INVALID_SIGNATURE"
	ErrMissingToken         ErrorCode = "MISSING_TOKEN"
	ErrMalformedAuthHeader  ErrorCode = "MALFORMED_AUTH_HEADER"
	ErrUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"
	ErrNoneAlgorithm        ErrorCode = "NONE_ALGORITHM"
	ErrMissingClaim         ErrorCode = "MISSING_CLAIM"
	ErrConfigError          ErrorCode = "CONFIG_ERROR"

	errUnknown ErrorCode = "UNKNOWN"
)

// TokenError is returned by every operation in this package that can fail
type TokenError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *TokenError) Error() string {
	if e.Internal == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
}

// Unwrap implements the error unwrapping interface
func (e *TokenError) Unwrap() error {
	return e.Internal
}

// NewTokenError creates a new token error
func NewTokenError(code ErrorCode, message string, internal error) *TokenError {
	return &TokenError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// CodeOf returns the ErrorCode carried by err, or "UNKNOWN"
func CodeOf(err error) ErrorCode {
	var tokErr *TokenError
	if errors.As(err, &tokErr) {
		return tokErr.Code
	}
	return errUnknown
}

// IsDecodeFailure reports whether err means the token could not be read at all
func IsDecodeFailure(err error) bool {
	switch CodeOf(err) {
	case ErrMalformedStructure, ErrMalformedEncoding, ErrMalformedPayload:
		return true
	}
	return false
}
