package identity

import (
	"context"
	"testing"
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/projecthub/backend/internal/infrastructure/auth"
	"github.com/projecthub/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-with-enough-length",
		RefreshSecret:          "test-refresh-secret-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "projecthub-test",
		MaxRefreshCount:        5,
	})
}

func newTestAuthService(userRepo *MockUserRepository) *AuthService {
	return NewAuthService(
		userRepo,
		newTestJWTService(),
		auth.NewInMemoryTokenBlacklist(),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
}

func registeredUser(t *testing.T, username string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, username+"@example.com", "password1")
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := newTestAuthService(userRepo)
		result, err := svc.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username)
		assert.Equal(t, "alice@example.com", result.User.Email)
		assert.NotEqual(t, uuid.Nil, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByUsername", ctx, "alice").Return(true, nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "other@example.com",
			Password: "password1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "USERNAME_EXISTS", domainErr.Code)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByUsername", ctx, "bob").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Register(ctx, RegisterInput{
			Username: "bob",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "EMAIL_EXISTS", domainErr.Code)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByUsername", ctx, "carol").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "carol@example.com").Return(false, nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Register(ctx, RegisterInput{
			Username: "carol",
			Email:    "carol@example.com",
			Password: "short",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tokens on valid credentials", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		result, err := svc.Login(ctx, LoginInput{
			Username: "alice",
			Password: "password1",
			IP:       "192.0.2.1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "alice", result.User.Username)
		assert.NotNil(t, user.LastLoginAt)
		assert.Equal(t, "192.0.2.1", user.LastLoginIP)
	})

	t.Run("rejects unknown username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "password1"})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrongpass1"})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("locks account after max failed attempts", func(t *testing.T) {
		user := registeredUser(t, "alice")
		user.FailedAttempts = 4
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrongpass1"})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		user := registeredUser(t, "alice")
		require.NoError(t, user.Deactivate())
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "password1"})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh token pair", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "password1"})
		require.NoError(t, err)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		userRepo := new(MockUserRepository)

		svc := newTestAuthService(userRepo)
		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-token"})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("rejects tokens issued before logout", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "password1"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: user.ID}))

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored profile", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := newTestAuthService(userRepo)
		result, err := svc.GetCurrentUser(ctx, GetCurrentUserInput{UserID: user.ID})

		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username)
	})

	t.Run("unknown id yields USER_NOT_FOUND", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		svc := newTestAuthService(userRepo)
		_, err := svc.GetCurrentUser(ctx, GetCurrentUserInput{UserID: uuid.New()})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes the password", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "password1",
			NewPassword: "password2",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("password2"))
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		user := registeredUser(t, "alice")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := newTestAuthService(userRepo)
		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrongpass1",
			NewPassword: "password2",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}
