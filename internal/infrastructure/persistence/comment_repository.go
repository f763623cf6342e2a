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

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormCommentRepository) WithTx(tx *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: tx}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, c *project.Comment) error {
	model := models.CommentModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing comment
func (r *GormCommentRepository) Update(ctx context.Context, c *project.Comment) error {
	model := models.CommentModelFromDomain(c)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a comment by ID. Author-only access is enforced by the
// application service, not here.
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser returns comments whose effective project (the explicit tag
// if set, otherwise the task's project) is visible to the user, newest first.
func (r *GormCommentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.CommentFilter) ([]*project.Comment, int64, error) {
	db := r.db.WithContext(ctx)

	visible := visibleProjectIDs(db, userID)
	taskProjects := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.TaskModel{}).
		Select("id").
		Where("project_id IN (?)", visible)

	query := db.Model(&models.CommentModel{}).
		Where("(project_id IS NOT NULL AND project_id IN (?)) OR (project_id IS NULL AND task_id IN (?))",
			visibleProjectIDs(db, userID), taskProjects)

	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.ProjectID != nil {
		taskInProject := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.TaskModel{}).
			Select("id").
			Where("project_id = ?", *filter.ProjectID)
		query = query.Where("project_id = ? OR (project_id IS NULL AND task_id IN (?))",
			*filter.ProjectID, taskInProject)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commentModels []*models.CommentModel
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&commentModels).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]*project.Comment, len(commentModels))
	for i, model := range commentModels {
		comments[i] = model.ToDomain()
	}

	return comments, total, nil
}

// Ensure GormCommentRepository implements CommentRepository
var _ project.CommentRepository = (*GormCommentRepository)(nil)
