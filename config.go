package auth

import "time"

// BasicConfig is a plain value implementation of Config. Zero fields fall
// back to the package defaults at construction time.
type BasicConfig struct {
	SigningKey       string
	Issuer           string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	LockoutThreshold int
	LockoutWindow    time.Duration
}

var _ Config = BasicConfig{}

func (c BasicConfig) GetSigningKey() string { return c.SigningKey }

func (c BasicConfig) GetIssuer() string { return c.Issuer }

func (c BasicConfig) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

func (c BasicConfig) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

func (c BasicConfig) GetLockoutThreshold() int { return c.LockoutThreshold }

func (c BasicConfig) GetLockoutWindow() time.Duration { return c.LockoutWindow }
