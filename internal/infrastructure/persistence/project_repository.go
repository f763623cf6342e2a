package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/projecthub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormProjectRepository) WithTx(tx *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: tx}
}

// Create creates a new project and its member rows
func (r *GormProjectRepository) Create(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ProjectModelFromDomain(p)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return saveMembers(tx, p)
	})
}

// Update updates an existing project
func (r *GormProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the project and cascades to everything under it
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProjectModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return deleteProjectCascade(tx, id)
	})
}

// FindByID finds a project by ID without scoping
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p := model.ToDomain()
	if err := r.loadMembers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByIDForUser finds a project by ID within the user's visible scope.
// An out-of-scope id reports not-found.
func (r *GormProjectRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Project, error) {
	db := r.db.WithContext(ctx)
	var model models.ProjectModel
	if err := db.
		Where("id = ?", id).
		Where("id IN (?)", visibleProjectIDs(db, userID)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p := model.ToDomain()
	if err := r.loadMembers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindAllForUser returns the user's visible projects, newest first
func (r *GormProjectRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.PageFilter) ([]*project.Project, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.ProjectModel{}).
		Where("id IN (?)", visibleProjectIDs(db, userID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projectModels []*models.ProjectModel
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&projectModels).Error; err != nil {
		return nil, 0, err
	}

	projects := make([]*project.Project, len(projectModels))
	for i, model := range projectModels {
		p := model.ToDomain()
		if err := r.loadMembers(ctx, p); err != nil {
			return nil, 0, err
		}
		projects[i] = p
	}

	return projects, total, nil
}

// SaveMembers replaces the stored member set with p.MemberIDs
func (r *GormProjectRepository) SaveMembers(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveMembers(tx, p)
	})
}

// Stats returns the display counts for one project
func (r *GormProjectRepository) Stats(ctx context.Context, projectID uuid.UUID) (project.ProjectStats, error) {
	var stats project.ProjectStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.ProjectMemberModel{}).
		Where("project_id = ?", projectID).
		Count(&stats.MemberCount).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.TaskModel{}).
		Where("project_id = ?", projectID).
		Count(&stats.TaskCount).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.DocumentModel{}).
		Where("project_id = ?", projectID).
		Count(&stats.DocumentCount).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *GormProjectRepository) loadMembers(ctx context.Context, p *project.Project) error {
	var memberModels []models.ProjectMemberModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", p.ID).
		Find(&memberModels).Error; err != nil {
		return err
	}

	memberIDs := make([]uuid.UUID, len(memberModels))
	for i, m := range memberModels {
		memberIDs[i] = m.UserID
	}
	p.MemberIDs = memberIDs

	return nil
}

func saveMembers(tx *gorm.DB, p *project.Project) error {
	if err := tx.Where("project_id = ?", p.ID).Delete(&models.ProjectMemberModel{}).Error; err != nil {
		return err
	}

	if len(p.MemberIDs) == 0 {
		return nil
	}

	memberModels := make([]models.ProjectMemberModel, len(p.MemberIDs))
	for i, userID := range p.MemberIDs {
		memberModels[i] = models.ProjectMemberModel{
			ProjectID: p.ID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
	}
	return tx.Create(&memberModels).Error
}

// Ensure GormProjectRepository implements ProjectRepository
var _ project.ProjectRepository = (*GormProjectRepository)(nil)
