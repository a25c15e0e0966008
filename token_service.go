package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultAccessTokenTTL is the default lifetime of an access token
const DefaultAccessTokenTTL = 30 * time.Minute

// DefaultRefreshTokenTTL is the fixed lifetime of a refresh token
const DefaultRefreshTokenTTL = 7 * 24 * time.Hour

// TokenService signs and verifies bearer tokens. Verification is pure: it
// needs the signing key and a clock, nothing else.
type TokenService interface {
	IssueAccess(identity Identity) (string, error)
	IssueAccessTTL(identity Identity, ttl time.Duration) (string, error)
	IssueRefresh(identity Identity) (string, error)
	IssuePair(identity Identity) (*TokenPair, error)
	Verify(tokenString string) (AuthClaims, error)
	SignClaims(claims *JWTClaims) (string, error)
	AccessTokenTTL() time.Duration
}

// TokenPair is the login and refresh response shape the transport layer
// serializes as-is.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

// TokenServiceOption customizes token service construction
type TokenServiceOption func(*TokenServiceImpl)

// WithTokenClock injects a custom clock (useful for tests)
func WithTokenClock(clock func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if clock != nil {
			ts.now = clock
		}
	}
}

// NewTokenService creates a new TokenService instance. The signing key and
// lifetimes are explicit construction arguments; nothing is read from ambient
// state. Non-positive TTLs fall back to the defaults.
func NewTokenService(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string, logger Logger, opts ...TokenServiceOption) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	ts := &TokenServiceImpl{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     logger,
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}

	return ts
}

// AccessTokenTTL returns the configured access token lifetime
func (ts *TokenServiceImpl) AccessTokenTTL() time.Duration {
	return ts.accessTTL
}

// IssueAccess creates an access token with the default TTL. Access tokens
// carry no type discriminator.
func (ts *TokenServiceImpl) IssueAccess(identity Identity) (string, error) {
	return ts.IssueAccessTTL(identity, ts.accessTTL)
}

// IssueAccessTTL creates an access token with an explicit TTL override
func (ts *TokenServiceImpl) IssueAccessTTL(identity Identity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = ts.accessTTL
	}
	return ts.sign(identity, ttl, "")
}

// IssueRefresh creates a refresh token with the fixed refresh TTL and the
// type=refresh discriminator.
func (ts *TokenServiceImpl) IssueRefresh(identity Identity) (string, error) {
	return ts.sign(identity, ts.refreshTTL, TokenTypeRefresh)
}

// IssuePair mints a fresh access and refresh token for the same identity
func (ts *TokenServiceImpl) IssuePair(identity Identity) (*TokenPair, error) {
	access, err := ts.IssueAccess(identity)
	if err != nil {
		return nil, err
	}

	refresh, err := ts.IssueRefresh(identity)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(ts.accessTTL.Seconds()),
	}, nil
}

func (ts *TokenServiceImpl) sign(identity Identity, ttl time.Duration, tokenType string) (string, error) {
	if identity == nil {
		return "", errors.New("identity must not be nil", errors.CategoryBadInput)
	}

	now := ts.now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.Email(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:  identity.ID(),
		Type: tokenType,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Verify parses and validates a token string, returning structured claims.
// It never panics; any structural, signature, or expiry failure comes back as
// a sentinel error the caller can branch on.
func (ts *TokenServiceImpl) Verify(tokenString string) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithTimeFunc(ts.now),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService verify could not decode or validate claims")
	return nil, ErrTokenInvalid
}
