package jwtclaims

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// JWTAuth returns a Gin middleware that rejects requests without a verified token
func JWTAuth(v *Verifier) gin.HandlerFunc {
	cfg := v.Config()
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := requestIDFrom(c)

		token, err := TokenFromRequest(c.Request, cfg.CookieName())
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			c.AbortWithStatusJSON(http.StatusUnauthorized, buildErrorResponse(err))
			return
		}

		claims, err := v.Verify(token)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			c.AbortWithStatusJSON(http.StatusUnauthorized, buildErrorResponse(err))
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		ctx = WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		logAuthSuccess(cfg, requestID, claims, token, time.Since(startTime))
		c.Next()
	}
}

// SessionHint returns a Gin middleware that decodes the request's token, if
// any, WITHOUT verifying it, and stores the result as a Session. It never
// aborts. Pages use the hint to pick between the signed-in view and the login
// redirect; protected handlers must still sit behind JWTAuth.
func SessionHint(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := Session{Expired: true}

		token, err := TokenFromRequest(c.Request, codec.cfg.CookieName())
		if err != nil {
			session.Reason = CodeOf(err)
		} else if claims, err := codec.Decode(token); err != nil {
			session.Reason = CodeOf(err)
		} else {
			session.Claims = claims
			if err := codec.CheckExpiry(claims); err != nil {
				session.Reason = CodeOf(err)
			} else {
				session.Expired = false
			}
		}

		ctx := WithSession(c.Request.Context(), session)
		ctx = WithRequestID(ctx, requestIDFrom(c))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects requests whose verified claims lack role. Mount after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":  "unauthorized",
				"reason": ErrMissingToken,
			})
			return
		}
		if !claims.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": role + " role required",
			})
			return
		}
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	if id := c.GetHeader(requestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

func logAuthSuccess(cfg *Config, requestID string, claims *Claims, token string, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	userID := claims.Subject
	if userID == "" && claims.UserID != 0 {
		userID = strconv.FormatInt(claims.UserID, 10)
	}
	logTokenEvent(cfg.Logger(), TokenEvent{
		EventType:    eventAuthSuccess,
		RequestID:    requestID,
		UserID:       userID,
		Algorithm:    extractAlgorithmFromToken(token),
		TokenPreview: token,
		Latency:      latency,
	})
}

func logAuthFailure(cfg *Config, requestID string, token string, err error, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	logTokenEvent(cfg.Logger(), TokenEvent{
		EventType:     eventAuthFailure,
		RequestID:     requestID,
		Algorithm:     extractAlgorithmFromToken(token),
		FailureReason: CodeOf(err),
		TokenPreview:  token,
		Latency:       latency,
	})
}

// buildErrorResponse includes the message only where it helps the client fix the request
func buildErrorResponse(err error) gin.H {
	response := gin.H{
		"error":  "unauthorized",
		"reason": CodeOf(err),
	}

	if tokErr, ok := err.(*TokenError); ok {
		switch tokErr.Code {
		case ErrUnsupportedAlgorithm, ErrMalformedAuthHeader, ErrMissingClaim:
			if tokErr.Message != "" {
				response["message"] = tokErr.Message
			}
		}
	}
	return response
}

// extractAlgorithmFromToken reads the alg header for logging, or returns MALFORMED
func extractAlgorithmFromToken(token string) string {
	header, _, ok := strings.Cut(token, ".")
	if !ok {
		return "MALFORMED"
	}

	raw, err := decodeSegment(header)
	if err != nil {
		return "MALFORMED"
	}

	var fields struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil || fields.Alg == "" {
		return "MALFORMED"
	}
	return fields.Alg
}
