package persistence

import (
	"context"
	"errors"

	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/projecthub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: tx}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(ctx context.Context, n *project.Notification) error {
	model := models.NotificationModelFromDomain(n)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing notification
func (r *GormNotificationRepository) Update(ctx context.Context, n *project.Notification) error {
	model := models.NotificationModelFromDomain(n)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a notification by ID. Ownership is checked by the
// application service.
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser returns the user's inbox, newest first
func (r *GormNotificationRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.PageFilter) ([]*project.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []*models.NotificationModel
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*project.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = model.ToDomain()
	}

	return notifications, total, nil
}

// CountUnread returns the number of unread items in the user's inbox
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ project.NotificationRepository = (*GormNotificationRepository)(nil)
