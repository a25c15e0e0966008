package auth_test

import (
	"context"
	"sync"
	"time"

	auth "github.com/bchristian14/leaguelogik-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMembers implements auth.Members for testing
type MockMembers struct {
	mock.Mock
}

func (m *MockMembers) GetByEmail(ctx context.Context, email string) (*auth.Member, error) {
	args := m.Called(ctx, email)
	if member, ok := args.Get(0).(*auth.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembers) GetByID(ctx context.Context, id uuid.UUID) (*auth.Member, error) {
	args := m.Called(ctx, id)
	if member, ok := args.Get(0).(*auth.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembers) TrackFailedLogin(ctx context.Context, member *auth.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMembers) TrackSuccessfulLogin(ctx context.Context, member *auth.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMembers) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// memoryMembers is a thread safe in-memory store mirroring the repository's
// serialization guarantees: the failure counter updates run under a single
// lock, exactly like the SQL UPDATE serializes at the row.
type memoryMembers struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*auth.Member
	byEmail   map[string]uuid.UUID
	threshold int
	window    time.Duration
	now       func() time.Time
}

func newMemoryMembers() *memoryMembers {
	return &memoryMembers{
		records:   map[uuid.UUID]*auth.Member{},
		byEmail:   map[string]uuid.UUID{},
		threshold: auth.DefaultLockoutThreshold,
		window:    auth.DefaultLockoutWindow,
		now:       time.Now,
	}
}

func (s *memoryMembers) add(member *auth.Member) *auth.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	clone := *member
	s.records[member.ID] = &clone
	s.byEmail[member.Email] = member.ID
	return member
}

func (s *memoryMembers) get(id uuid.UUID) *auth.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.records[id]; ok {
		clone := *stored
		return &clone
	}
	return nil
}

func (s *memoryMembers) GetByEmail(ctx context.Context, email string) (*auth.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	clone := *s.records[id]
	return &clone, nil
}

func (s *memoryMembers) GetByID(ctx context.Context, id uuid.UUID) (*auth.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[id]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	clone := *stored
	return &clone, nil
}

func (s *memoryMembers) TrackFailedLogin(ctx context.Context, member *auth.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[member.ID]
	if !ok {
		return auth.ErrIdentityNotFound
	}

	stored.FailedLoginAttempts++
	if stored.FailedLoginAttempts >= s.threshold {
		until := s.now().Add(s.window)
		stored.LockedUntil = &until
	}
	return nil
}

func (s *memoryMembers) TrackSuccessfulLogin(ctx context.Context, member *auth.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[member.ID]
	if !ok {
		return auth.ErrIdentityNotFound
	}

	stored.FailedLoginAttempts = 0
	stored.LockedUntil = nil
	return nil
}

func (s *memoryMembers) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[id]
	if !ok {
		return auth.ErrIdentityNotFound
	}

	stored.PasswordHash = passwordHash
	return nil
}

var _ auth.Members = (*memoryMembers)(nil)

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

type discardLogger struct{}

func (discardLogger) Debug(format string, args ...any) {}
func (discardLogger) Info(format string, args ...any)  {}
func (discardLogger) Error(format string, args ...any) {}

func testConfig() auth.BasicConfig {
	return auth.BasicConfig{
		SigningKey:       "test-signing-key",
		Issuer:           "leaguelogik-test",
		AccessTokenTTL:   30 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		LockoutThreshold: 5,
		LockoutWindow:    15 * time.Minute,
	}
}
