package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/projecthub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"      // Normal active status
	UserStatusLocked      UserStatus = "locked"      // Locked due to failed attempts/security
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a registered account.
// It is the aggregate root for identity operations; username and email are
// globally unique, enforced by the repository.
type User struct {
	shared.BaseAggregateRoot
	Username       string
	Email          string
	PasswordHash   string
	DisplayName    string
	Status         UserStatus
	LastLoginAt    *time.Time
	LastLoginIP    string
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates a new active user with required fields
func NewUser(username, email, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetDisplayName sets the user's display name
func (u *User) SetDisplayName(displayName string) error {
	if displayName != "" && len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Lock locks the user account
func (u *User) Lock(duration time.Duration) error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("USER_DEACTIVATED", "Cannot lock a deactivated user")
	}

	u.Status = UserStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		u.LockedUntil = &lockedUntil
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Unlock unlocks the user account
func (u *User) Unlock() error {
	if u.Status != UserStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "User is not locked")
	}

	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt
// Returns true if the account was locked as a result
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= maxAttempts {
		_ = u.Lock(lockDuration)
		return true
	}

	return false
}

// IsActive returns true if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLocked returns true if user is locked
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}

	// Check if lock has expired
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}

	return true
}

// IsDeactivated returns true if user is deactivated
func (u *User) IsDeactivated() bool {
	return u.Status == UserStatusDeactivated
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	if u.Status == UserStatusDeactivated {
		return false
	}
	if u.IsLocked() {
		return false
	}
	return true
}

// GetDisplayNameOrUsername returns display name if set, otherwise username
func (u *User) GetDisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Validation functions

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}

	// Allow alphanumeric, underscore, hyphen, and dot
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	// Check for at least one letter and one number
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	// Basic email validation
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
