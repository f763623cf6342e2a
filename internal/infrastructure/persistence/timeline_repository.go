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

// GormTimelineRepository implements TimelineRepository using GORM.
// The table is append-only; there is deliberately no update method.
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewGormTimelineRepository creates a new GormTimelineRepository
func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormTimelineRepository) WithTx(tx *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: tx}
}

// Append writes one event to the ledger
func (r *GormTimelineRepository) Append(ctx context.Context, e *project.TimelineEvent) error {
	model := models.TimelineEventModelFromDomain(e)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds an event by ID
func (r *GormTimelineRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.TimelineEvent, error) {
	var model models.TimelineEventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser returns events of the user's visible projects, newest first
func (r *GormTimelineRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.TimelineFilter) ([]*project.TimelineEvent, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.TimelineEventModel{}).
		Where("project_id IN (?)", visibleProjectIDs(db, userID))

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var eventModels []*models.TimelineEventModel
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&eventModels).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*project.TimelineEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = model.ToDomain()
	}

	return events, total, nil
}

// Ensure GormTimelineRepository implements TimelineRepository
var _ project.TimelineRepository = (*GormTimelineRepository)(nil)
