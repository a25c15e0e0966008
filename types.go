package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated principal
type Identity interface {
	ID() string
	Email() string
	Role() AdminRole
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetLockoutThreshold() int
	GetLockoutWindow() time.Duration
}

// Members ensures we have a store to retrieve and persist member records.
// Implementations own the durable state; the core re-reads and re-writes
// through these methods on every operation and never caches across calls.
type Members interface {
	GetByEmail(ctx context.Context, email string) (*Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// TrackFailedLogin persists the failure counter and lock fields after
	// RecordFailure. Implementations must serialize concurrent updates for
	// the same member so no failed attempt is lost.
	TrackFailedLogin(ctx context.Context, member *Member) error

	// TrackSuccessfulLogin persists the counter reset after RecordSuccess.
	TrackSuccessfulLogin(ctx context.Context, member *Member) error

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Member, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
