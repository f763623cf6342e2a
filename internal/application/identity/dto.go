package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterResult contains the result of a successful registration.
// Registration implies login, so the new account gets a token pair
// immediately.
type RegisterResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned by auth operations
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	Email       string
	DisplayName string
	Status      string
	CreatedAt   time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID of the access token being revoked
	TokenTTL time.Duration // Remaining lifetime of that token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User UserInfo
}
