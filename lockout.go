package auth

import "time"

const (
	// DefaultLockoutThreshold is the number of consecutive failures that arms the lock
	DefaultLockoutThreshold = 5
	// DefaultLockoutWindow is how long an armed lock refuses authentication
	DefaultLockoutWindow = 15 * time.Minute
)

// LockoutPolicy is the per-member failure counting state machine. It mutates
// Member fields in memory only; callers persist through the Members store.
// Lock expiry is evaluated lazily on each check, there is no background timer.
type LockoutPolicy struct {
	threshold int
	window    time.Duration
	now       func() time.Time
}

// LockoutOption customizes policy construction
type LockoutOption func(*LockoutPolicy)

// WithLockoutClock injects a custom clock (useful for tests)
func WithLockoutClock(clock func() time.Time) LockoutOption {
	return func(p *LockoutPolicy) {
		if clock != nil {
			p.now = clock
		}
	}
}

// NewLockoutPolicy returns a policy with the given threshold and window.
// Non-positive values fall back to the defaults.
func NewLockoutPolicy(threshold int, window time.Duration, opts ...LockoutOption) *LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	if window <= 0 {
		window = DefaultLockoutWindow
	}

	p := &LockoutPolicy{
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Threshold returns the configured failure threshold
func (p *LockoutPolicy) Threshold() int {
	return p.threshold
}

// Window returns the configured lockout duration
func (p *LockoutPolicy) Window() time.Duration {
	return p.window
}

// RecordFailure increments the failure counter and, once the counter reaches
// the threshold, arms the lock for a full window from now. A failure while
// the counter is already at or past the threshold re-arms the lock, extending
// it by another full window.
func (p *LockoutPolicy) RecordFailure(member *Member) {
	member.FailedLoginAttempts++

	if member.FailedLoginAttempts >= p.threshold {
		until := p.now().Add(p.window)
		member.LockedUntil = &until
	}
}

// RecordSuccess resets the failure counter and clears any lock
func (p *LockoutPolicy) RecordSuccess(member *Member) {
	member.FailedLoginAttempts = 0
	member.LockedUntil = nil
}

// IsLocked reports whether the member's lock window is still open. Once the
// window has passed the member is no longer locked even though the failure
// counter keeps its value until the next successful authentication.
func (p *LockoutPolicy) IsLocked(member *Member) bool {
	if member.LockedUntil == nil {
		return false
	}
	return p.now().Before(*member.LockedUntil)
}
