package auth_test

import (
	"context"
	"database/sql"
	"testing"

	auth "github.com/bchristian14/leaguelogik-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupRegisterHandler(t *testing.T) (*auth.RegisterMemberHandler, *auth.MembersRepository, func()) {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec(sqliteCreateMembers)
	require.NoError(t, err)

	repo := auth.NewMembersRepository(bunDB)
	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return auth.NewRegisterMemberHandler(bunDB, repo), repo, cleanup
}

func TestRegisterMemberHandler(t *testing.T) {
	handler, repo, cleanup := setupRegisterHandler(t)
	defer cleanup()

	ctx := context.Background()

	member, err := handler.Execute(ctx, auth.RegisterMemberMessage{
		FirstName: "Pat",
		LastName:  "Jones",
		Email:     "pat@leaguelogik.test",
		Role:      auth.RoleCourseCoordinator,
		Password:  testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, auth.MemberStatusActive, member.Status)
	assert.Equal(t, auth.RoleCourseCoordinator, member.Role)
	assert.NotEqual(t, testPassword, member.PasswordHash, "the cleartext never lands in the record")
	assert.NoError(t, auth.ComparePasswordAndHash(testPassword, member.PasswordHash))

	stored, err := repo.GetByEmail(ctx, "pat@leaguelogik.test")
	require.NoError(t, err)
	assert.Equal(t, member.ID, stored.ID)
}

func TestRegisterMemberHandlerInvalidRole(t *testing.T) {
	handler, _, cleanup := setupRegisterHandler(t)
	defer cleanup()

	_, err := handler.Execute(context.Background(), auth.RegisterMemberMessage{
		Email:    "pat@leaguelogik.test",
		Role:     "club_president",
		Password: testPassword,
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_ROLE", auth.FailureReason(err))
}

func TestRegisterMemberHandlerWeakPassword(t *testing.T) {
	handler, _, cleanup := setupRegisterHandler(t)
	defer cleanup()

	_, err := handler.Execute(context.Background(), auth.RegisterMemberMessage{
		Email:    "pat@leaguelogik.test",
		Password: "weak",
	})
	require.Error(t, err)
	assert.Equal(t, "PASSWORD_POLICY", auth.FailureReason(err))
}

func TestRegisterMemberHandlerDuplicateEmail(t *testing.T) {
	handler, _, cleanup := setupRegisterHandler(t)
	defer cleanup()

	ctx := context.Background()
	message := auth.RegisterMemberMessage{
		Email:    "pat@leaguelogik.test",
		Password: testPassword,
	}

	_, err := handler.Execute(ctx, message)
	require.NoError(t, err)

	_, err = handler.Execute(ctx, message)
	assert.Error(t, err)
}

func TestRegisterMemberHandlerCancelledContext(t *testing.T) {
	handler, _, cleanup := setupRegisterHandler(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Execute(ctx, auth.RegisterMemberMessage{
		Email:    "pat@leaguelogik.test",
		Password: testPassword,
	})
	assert.Error(t, err)
}
