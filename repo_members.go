package auth

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MembersRepository is the bun backed Members store. The failure-counter
// updates run as single SQL statements so concurrent attempts against the
// same member serialize at the row and no failure is ever lost.
type MembersRepository struct {
	db        bun.IDB
	threshold int
	window    time.Duration
	now       func() time.Time
}

var _ Members = (*MembersRepository)(nil)

// MembersOption customizes repository construction
type MembersOption func(*MembersRepository)

// WithMembersLockout overrides the lockout settings baked into the tracking SQL
func WithMembersLockout(threshold int, window time.Duration) MembersOption {
	return func(r *MembersRepository) {
		if threshold > 0 {
			r.threshold = threshold
		}
		if window > 0 {
			r.window = window
		}
	}
}

// WithMembersClock injects a custom clock (useful for tests)
func WithMembersClock(clock func() time.Time) MembersOption {
	return func(r *MembersRepository) {
		if clock != nil {
			r.now = clock
		}
	}
}

// NewMembersRepository will create a new bun backed members store
func NewMembersRepository(db bun.IDB, opts ...MembersOption) *MembersRepository {
	repo := &MembersRepository{
		db:        db,
		threshold: DefaultLockoutThreshold,
		window:    DefaultLockoutWindow,
		now:       time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}

	return repo
}

// GetByEmail looks a member up by exact, case sensitive email
func (r *MembersRepository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	member := new(Member)
	err := r.db.NewSelect().
		Model(member).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query member by email")
	}

	return member, nil
}

// GetByID looks a member up by primary key
func (r *MembersRepository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	member := new(Member)
	err := r.db.NewSelect().
		Model(member).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query member by id")
	}

	return member, nil
}

// Create inserts a new member record
func (r *MembersRepository) Create(ctx context.Context, member *Member) (*Member, error) {
	return r.CreateTx(ctx, r.db, member)
}

// CreateTx inserts a new member record inside an existing transaction
func (r *MembersRepository) CreateTx(ctx context.Context, tx bun.IDB, member *Member) (*Member, error) {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.EnsureStatus()

	if _, err := tx.NewInsert().Model(member).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create member")
	}

	return member, nil
}

// TrackFailedLogin increments the failure counter and arms the lock in one
// atomic statement. The counter comparison runs against the incremented value
// inside the database, so N concurrent failures always land as N and the
// threshold cannot be raced past.
//
// NOTE: updating through the ORM would read-modify-write the counter and drop
// concurrent increments; raw SQL is deliberate here.
func (r *MembersRepository) TrackFailedLogin(ctx context.Context, member *Member) error {
	lockUntil := r.now().Add(r.window)

	res, err := r.db.NewRaw(`
		UPDATE "members" AS "mbr"
		SET
			"failed_login_attempts" = "failed_login_attempts" + 1,
			"locked_until" = CASE
				WHEN "failed_login_attempts" + 1 >= ? THEN ?
				ELSE "locked_until"
			END,
			"updated_at" = ?
		WHERE ("mbr".id = ?);
	`, r.threshold, lockUntil, r.now(), member.ID).Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track failed login")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

// TrackSuccessfulLogin resets the failure counter and clears the lock
func (r *MembersRepository) TrackSuccessfulLogin(ctx context.Context, member *Member) error {
	_, err := r.db.NewRaw(`
		UPDATE "members" AS "mbr"
		SET
			"failed_login_attempts" = 0,
			"locked_until" = NULL,
			"updated_at" = ?
		WHERE ("mbr".id = ?);
	`, r.now(), member.ID).Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track successful login")
	}

	return nil
}

// UpdatePasswordHash persists a freshly hashed credential
func (r *MembersRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.NewRaw(`
		UPDATE "members" AS "mbr"
		SET
			"password_hash" = ?,
			"updated_at" = ?
		WHERE ("mbr".id = ?);
	`, passwordHash, r.now(), id).Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password hash")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrIdentityNotFound
	}

	return nil
}
