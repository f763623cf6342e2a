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

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormTaskRepository) WithTx(tx *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: tx}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, t *project.Task) error {
	model := models.TaskModelFromDomain(t)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing task
func (r *GormTaskRepository) Update(ctx context.Context, t *project.Task) error {
	model := models.TaskModelFromDomain(t)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the task and cascades to its comments
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.TaskModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a task by ID without scoping
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a task whose project is within the user's scope
func (r *GormTaskRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Task, error) {
	db := r.db.WithContext(ctx)
	var model models.TaskModel
	if err := db.
		Where("id = ?", id).
		Where("project_id IN (?)", visibleProjectIDs(db, userID)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser returns the user's visible tasks, newest first. A project
// filter outside the visible scope yields an empty result, not an error.
func (r *GormTaskRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.TaskFilter) ([]*project.Task, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.TaskModel{}).
		Where("project_id IN (?)", visibleProjectIDs(db, userID))

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var taskModels []*models.TaskModel
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&taskModels).Error; err != nil {
		return nil, 0, err
	}

	tasks := make([]*project.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = model.ToDomain()
	}

	return tasks, total, nil
}

// Ensure GormTaskRepository implements TaskRepository
var _ project.TaskRepository = (*GormTaskRepository)(nil)
