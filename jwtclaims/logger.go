package jwtclaims

import (
	"log/slog"
	"time"
)

const (
	eventDecodeFailure = "decode_failure"
	eventAuthSuccess   = "auth_success"
	eventAuthFailure   = "auth_failure"
)

// TokenEvent is a structured log entry about a single token
type TokenEvent struct {
	EventType     string        // decode_failure, auth_success, auth_failure
	RequestID     string        // Correlation ID, empty outside a request
	UserID        string        // sub claim, empty on failure
	Algorithm     string        // alg header, or MALFORMED
	FailureReason ErrorCode     // set on failures
	Cause         error         // underlying error on failures
	TokenPreview  string        // raw token, redacted when logged
	Latency       time.Duration // zero for decode diagnostics
}

// LogValue implements slog.LogValuer and redacts the token
func (e TokenEvent) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("event", e.EventType),
		slog.String("token", redactToken(e.TokenPreview)),
	}
	if e.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", e.RequestID))
	}
	if e.UserID != "" {
		attrs = append(attrs, slog.String("user_id", e.UserID))
	}
	if e.Algorithm != "" {
		attrs = append(attrs, slog.String("algorithm", e.Algorithm))
	}
	if e.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", string(e.FailureReason)))
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("error", e.Cause.Error()))
	}
	if e.Latency > 0 {
		attrs = append(attrs, slog.Duration("latency", e.Latency))
	}
	return slog.GroupValue(attrs...)
}

func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

func logTokenEvent(logger *slog.Logger, event TokenEvent) {
	if logger == nil {
		return
	}

	switch event.EventType {
	case eventDecodeFailure:
		logger.Warn("failed to decode JWT", "token_event", event)
	case eventAuthFailure:
		logger.Warn("authentication failed", "token_event", event)
	default:
		logger.Info("authentication succeeded", "token_event", event)
	}
}
