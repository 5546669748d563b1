package identity

import (
	"context"

	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and authentication
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account. Unless a role is given the account is
// a cashier; promoting to admin is an explicit choice.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	role := identity.RoleCashier
	if req.Role != "" {
		role = identity.Role(req.Role)
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}
	registered, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Email, string(hash), role)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	response := ToUserResponse(user)
	return &response, nil
}

// Login authenticates a user and issues an access token. Unknown usernames
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown username", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	token, err := s.jwtService.Generate(user.Principal())
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("Login succeeded",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// GetProfile returns the account behind a principal
func (s *AuthService) GetProfile(ctx context.Context, principal identity.Principal) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}
