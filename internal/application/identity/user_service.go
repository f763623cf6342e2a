package identity

import (
	"context"
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateUserInput contains input for updating a user profile
type UpdateUserInput struct {
	ID          uuid.UUID
	Email       *string
	DisplayName *string
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserListResult represents paginated user list result
type UserListResult struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}

	return toUserDTO(user), nil
}

// List retrieves a paginated list of users
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*UserListResult, error) {
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	userDTOs := make([]UserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = *toUserDTO(user)
	}

	return &UserListResult{
		Users:      userDTOs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update updates a user's profile information
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}

	if input.Email != nil {
		if *input.Email != "" && *input.Email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
			if err != nil {
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
			}
			if exists {
				return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
			}
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated", zap.String("user_id", input.ID.String()))

	return toUserDTO(user), nil
}

// Delete deletes a user. Owned projects are removed with everything under
// them; memberships and task assignments elsewhere are detached.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))

	return nil
}

// Deactivate deactivates a user
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))

	return toUserDTO(user), nil
}

// Unlock unlocks a user account
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}

	if err := user.Unlock(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to unlock user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock user")
	}

	s.logger.Info("User unlocked", zap.String("user_id", id.String()))

	return toUserDTO(user), nil
}

// Count returns the total number of users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// toUserDTO converts domain User to UserDTO
func toUserDTO(user *identity.User) *UserDTO {
	return &UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.GetDisplayNameOrUsername(),
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
