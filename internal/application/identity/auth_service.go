// Package identity implements the application services for accounts and
// authentication.
package identity

import (
	"context"
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/projecthub/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles registration and authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Register creates a new account. Username and email are globally unique.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	s.logger.Info("Registration attempt", zap.String("username", input.Username))

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	// Registration implies login
	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &RegisterResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("username", input.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		}
		if user.IsDeactivated() {
			s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
			return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
		}
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", input.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", input.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	// Record successful login; a failure here must not fail the login
	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", input.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := uuid.Parse(refreshClaims.UserID)
	if err != nil {
		s.logger.Error("Invalid user ID in refresh token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	// Refuse tokens issued before a user-wide invalidation (logout, password
	// change)
	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, refreshClaims.UserID, refreshClaims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check token invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
	}
	if invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed successfully", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the caller's current access token and invalidates every
// token issued to the user before now.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist access token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
		}
	}

	// Invalidate outstanding refresh tokens as well
	refreshTTL := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.UserID.String(), refreshTTL); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke tokens")
	}

	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	return &CurrentUserResult{User: toUserInfo(user)}, nil
}

// ChangePassword changes a user's password and invalidates existing tokens
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	refreshTTL := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.UserID.String(), refreshTTL); err != nil {
		s.logger.Error("Failed to invalidate tokens after password change", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))

	return nil
}

// mapTokenError translates JWT validation errors to domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}

// toUserInfo converts a domain User to the auth-facing UserInfo
func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.GetDisplayNameOrUsername(),
		Status:      string(user.Status),
		CreatedAt:   user.CreatedAt,
	}
}
