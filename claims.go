package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeRefresh is the discriminator value carried by refresh tokens.
// Access tokens carry no type claim at all.
const TokenTypeRefresh = "refresh"

// AuthClaims represents the verified contents of a bearer token
type AuthClaims interface {
	Subject() string
	UserID() string
	TokenType() string
	IsRefresh() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The wire shape is
// {sub: email, user_id: member id, exp, iat, iss, type?: "refresh"}.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID  string `json:"user_id,omitempty"`
	Type string `json:"type,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim, the member's email
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the member id claim
func (c *JWTClaims) UserID() string {
	return c.UID
}

// TokenType returns the type discriminator, empty for access tokens
func (c *JWTClaims) TokenType() string {
	return c.Type
}

// IsRefresh reports whether the token carries the refresh discriminator
func (c *JWTClaims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
