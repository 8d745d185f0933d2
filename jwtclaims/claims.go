package jwtclaims

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the IAM service puts in every access token.
// Fields missing from the payload keep their zero value; IssuedAt and
// ExpiresAt stay nil when the corresponding claim is absent.
type Claims struct {
	OrganizationID int64            `json:"organizationId"`
	Roles          []string         `json:"roles"`
	UserID         int64            `json:"userId"`
	IsOrganization bool             `json:"isOrganization"`
	Subject        string           `json:"sub"`
	IssuedAt       *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt      *jwt.NumericDate `json:"exp,omitempty"`
}

var _ jwt.Claims = (*Claims)(nil)

// HasRole reports whether role was granted to the subject
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ExpiresIn returns the time left until exp, negative once it has passed.
// Zero when the token carries no exp claim.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.ExpiresAt, nil
}

func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.IssuedAt, nil
}

func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c *Claims) GetIssuer() (string, error) {
	return "", nil
}

func (c *Claims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c *Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
