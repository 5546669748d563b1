package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/auth"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
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

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(users *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Expiration: time.Hour,
		Issuer:     "smartpos-test",
	})
	return NewAuthService(users, jwtService, zap.NewNop())
}

func newStoredUser(t *testing.T, username, password string, role identity.Role) *identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := identity.NewUser(username, username+"@example.com", string(hash), role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a cashier by default", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newTestAuthService(users)

		users.On("ExistsByUsername", ctx, "jamie").Return(false, nil)
		users.On("ExistsByEmail", ctx, "jamie@example.com").Return(false, nil)

		var created *identity.User
		users.On("Create", ctx, mock.AnythingOfType("*identity.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*identity.User)
			}).
			Return(nil)

		response, err := service.Register(ctx, RegisterRequest{
			Username: "jamie",
			Email:    "jamie@example.com",
			Password: "correct-horse-battery",
		})

		require.NoError(t, err)
		assert.Equal(t, "jamie", response.Username)
		assert.Equal(t, "cashier", response.Role)

		require.NotNil(t, created)
		assert.NotEqual(t, "correct-horse-battery", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct-horse-battery")))
		users.AssertExpectations(t)
	})

	t.Run("explicit admin role is honored", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newTestAuthService(users)

		users.On("ExistsByUsername", ctx, "sam").Return(false, nil)
		users.On("ExistsByEmail", ctx, "sam@example.com").Return(false, nil)
		users.On("Create", ctx, mock.Anything).Return(nil)

		response, err := service.Register(ctx, RegisterRequest{
			Username: "sam",
			Email:    "sam@example.com",
			Password: "correct-horse-battery",
			Role:     "admin",
		})

		require.NoError(t, err)
		assert.Equal(t, "admin", response.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newTestAuthService(users)

		users.On("ExistsByUsername", ctx, "jamie").Return(true, nil)

		response, err := service.Register(ctx, RegisterRequest{
			Username: "jamie",
			Email:    "jamie@example.com",
			Password: "correct-horse-battery",
		})

		assert.Nil(t, response)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newTestAuthService(users)

		users.On("ExistsByUsername", ctx, "jamie").Return(false, nil)
		users.On("ExistsByEmail", ctx, "jamie@example.com").Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Username: "jamie",
			Email:    "jamie@example.com",
			Password: "correct-horse-battery",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newTestAuthService(users)

		user := newStoredUser(t, "jamie", "correct-horse-battery", identity.RoleCashier)
		users.On("FindByUsername", ctx, "jamie").Return(user, nil)

		response, err := service.Login(ctx, LoginRequest{
			Username: "jamie",
			Password: "correct-horse-battery",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
		assert.Equal(t, "Bearer", response.TokenType)
		assert.Equal(t, "jamie", response.User.Username)
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newTestAuthService(users)

		user := newStoredUser(t, "jamie", "correct-horse-battery", identity.RoleCashier)
		users.On("FindByUsername", ctx, "jamie").Return(user, nil)
		users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, wrongPassword := service.Login(ctx, LoginRequest{Username: "jamie", Password: "nope"})
		_, unknownUser := service.Login(ctx, LoginRequest{Username: "ghost", Password: "nope"})

		require.Error(t, wrongPassword)
		require.Error(t, unknownUser)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

		var domainErr *shared.DomainError
		require.ErrorAs(t, wrongPassword, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_GetProfile(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	service := newTestAuthService(users)

	user := newStoredUser(t, "jamie", "correct-horse-battery", identity.RoleCashier)
	users.On("FindByID", ctx, user.ID).Return(user, nil)

	response, err := service.GetProfile(ctx, identity.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})

	require.NoError(t, err)
	assert.Equal(t, "jamie", response.Username)
}
