package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/projecthub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: tx}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a user by ID. Task assignments are nulled; owned projects,
// comments, and notifications cascade.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TaskModel{}).
			Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		// Owned projects cascade through the project delete path
		var ownedIDs []uuid.UUID
		if err := tx.Model(&models.ProjectModel{}).
			Where("created_by = ?", id).
			Pluck("id", &ownedIDs).Error; err != nil {
			return err
		}
		for _, projectID := range ownedIDs {
			if err := deleteProjectCascade(tx, projectID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMemberModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.NotificationModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.UserModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all users with pagination
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	var userModels []*models.UserModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.UserModel{})
	query = r.applyFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.SortBy, UserSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Order(sortBy + " " + sortOrder)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, len(userModels))
	for i, model := range userModels {
		users[i] = model.ToDomain()
	}

	return users, total, nil
}

// ExistsByUsername checks if a username already exists
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if an email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormUserRepository) applyFilter(query *gorm.DB, filter identity.UserFilter) *gorm.DB {
	if filter.Keyword != "" {
		searchPattern := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(display_name) LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	return query
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
