package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Auther composes the credential check, lockout bookkeeping, and token
// issuance into the authentication flows.
type Auther struct {
	store   Members
	tokens  TokenService
	lockout *LockoutPolicy
	logger  Logger
}

// NewAuthenticator returns a new Authenticator wired from configuration.
// The signing key, token lifetimes, and lockout thresholds come in through
// opts; nothing is read from ambient global state.
func NewAuthenticator(store Members, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetAccessTokenTTL(),
		opts.GetRefreshTokenTTL(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		store:   store,
		tokens:  tokenService,
		lockout: NewLockoutPolicy(opts.GetLockoutThreshold(), opts.GetLockoutWindow()),
		logger:  defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service, useful to inject a clock
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokens = ts
	}
	return s
}

// WithLockoutPolicy overrides the lockout policy, useful to inject a clock
func (s *Auther) WithLockoutPolicy(policy *LockoutPolicy) *Auther {
	if policy != nil {
		s.lockout = policy
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Authenticate verifies a member's credentials with lockout protection.
// Every check short-circuits: unknown email, open lockout window, inactive
// account, then password mismatch. The three failure kinds map to one generic
// unauthorized outcome at the boundary (IsAuthFailure) but stay distinct here
// for logs and tests.
func (s *Auther) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	member, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve member during verification")
	}
	if member == nil {
		return nil, ErrInvalidCredentials
	}

	if s.lockout.IsLocked(member) {
		s.logger.Info("authentication refused, account locked for member %s", member.ID.String())
		return nil, ErrAccountLocked
	}

	if !member.IsActive() {
		return nil, ErrInactiveAccount
	}

	if err := ComparePasswordAndHash(password, member.PasswordHash); err != nil {
		s.lockout.RecordFailure(member)

		// Fail closed: if the counter cannot be persisted the attempt is
		// refused as an internal failure rather than an uncounted retry.
		if err2 := s.store.TrackFailedLogin(ctx, member); err2 != nil {
			return nil, errors.Wrap(err2, errors.CategoryInternal, "failed to track login attempt")
		}

		return nil, ErrInvalidCredentials
	}

	s.lockout.RecordSuccess(member)
	if err := s.store.TrackSuccessfulLogin(ctx, member); err != nil {
		s.logger.Error("failed to track successful login: %v", err)
	}

	return member, nil
}

// Login authenticates and mints a fresh access and refresh token pair
func (s *Auther) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	member, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(member.AsIdentity())
	if err != nil {
		s.logger.Error("Login token issuance error: %v", err)
		return nil, err
	}

	return pair, nil
}

// Refresh validates a refresh token and mints a new pair for the same
// subject. The token must verify, carry the refresh discriminator, and the
// subject must still exist and be active.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}

	if !claims.IsRefresh() {
		return nil, ErrInvalidTokenType
	}

	member, err := s.store.GetByEmail(ctx, claims.Subject())
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve member during refresh")
	}
	if member == nil || !member.IsActive() {
		return nil, ErrTokenInvalid
	}

	return s.tokens.IssuePair(member.AsIdentity())
}

// IdentityFromToken resolves the member behind a bearer access token for
// per-request authorization. Refresh tokens are rejected here.
func (s *Auther) IdentityFromToken(ctx context.Context, token string) (*Member, AuthClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	if claims.IsRefresh() {
		return nil, nil, ErrInvalidTokenType
	}

	member, err := s.store.GetByEmail(ctx, claims.Subject())
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return nil, nil, ErrTokenInvalid
		}
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve member from token")
	}
	if member == nil {
		return nil, nil, ErrTokenInvalid
	}

	if !member.IsActive() {
		return nil, nil, ErrInactiveAccount
	}

	return member, claims, nil
}

// ChangePassword re-verifies the current password, checks the new password
// against policy, and persists a fresh hash.
func (s *Auther) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	member, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve member for password change")
	}
	if member == nil {
		return ErrIdentityNotFound
	}

	if err := ComparePasswordAndHash(currentPassword, member.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash new password")
	}

	if err := s.store.UpdatePasswordHash(ctx, member.ID, hash); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist new password hash")
	}

	return nil
}

var _ Authenticator = (*Auther)(nil)
