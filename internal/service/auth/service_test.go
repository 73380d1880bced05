package auth

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parlorhq/parlor-api/internal/model"
	pkgauth "github.com/parlorhq/parlor-api/pkg/auth"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
	"github.com/parlorhq/parlor-api/pkg/logger"
	"github.com/parlorhq/parlor-api/pkg/security"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthService(repo *MockUserRepository) *Service {
	hasher := security.NewBcryptHasher(4)
	tokens := pkgauth.NewJWTService("test-secret", 1)
	l := logger.New(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, hasher, tokens, l)
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, sql.ErrNoRows)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleCustomer && u.PasswordHash != "" && u.PasswordHash != "hunter2pass"
	})).Return(nil)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	existing := &model.User{Email: "ada@example.com"}
	existing.ID = uuid.New()
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2pass",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("hunter2pass")
	require.NoError(t, err)

	user := &model.User{Email: "ada@example.com", PasswordHash: hash, Role: model.RoleCustomer}
	user.ID = uuid.New()
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	repo.On("UpdateLastLogin", mock.Anything, user.ID).Return(nil)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter2pass",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	// Must not leak whether the account exists.
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	user := &model.User{Email: "ada@example.com", PasswordHash: hash}
	user.ID = uuid.New()
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestLogin_LastLoginFailureIsTolerated(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("hunter2pass")
	require.NoError(t, err)

	user := &model.User{Email: "ada@example.com", PasswordHash: hash}
	user.ID = uuid.New()
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	repo.On("UpdateLastLogin", mock.Anything, user.ID).Return(errors.New("connection reset"))

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, sql.ErrNoRows)

	_, err := svc.GetProfile(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
