package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RegisterMemberMessage carries a new member registration. Used by the
// signup flow and by the admin seeding script.
type RegisterMemberMessage struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      AdminRole `json:"admin_role"`
	Password  string    `json:"password"`
}

func (e RegisterMemberMessage) Type() string { return "member.register" }

type RegisterMemberHandler struct {
	db   *bun.DB
	repo *MembersRepository
}

// NewRegisterMemberHandler wires the handler against a database
func NewRegisterMemberHandler(db *bun.DB, repo *MembersRepository) *RegisterMemberHandler {
	return &RegisterMemberHandler{db: db, repo: repo}
}

func (h *RegisterMemberHandler) Execute(ctx context.Context, event RegisterMemberMessage) (*Member, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during member registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterMemberHandler) execute(ctx context.Context, event RegisterMemberMessage) (*Member, error) {
	if event.Role != "" && !IsValidRole(event.Role) {
		return nil, goerrors.New("unknown or invalid admin role", goerrors.CategoryValidation).
			WithTextCode("INVALID_ROLE").
			WithMetadata(map[string]any{"role": event.Role})
	}

	if err := ValidatePasswordStrength(event.Password); err != nil {
		return nil, err
	}

	member := &Member{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		member.PasswordHash = hash
		member.Email = event.Email
		member.FirstName = event.FirstName
		member.LastName = event.LastName
		member.Role = event.Role
		member.Status = MemberStatusActive

		if member, err = h.repo.CreateTx(ctx, tx, member); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create member")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "member registration transaction failed")
	}

	return member, nil
}
