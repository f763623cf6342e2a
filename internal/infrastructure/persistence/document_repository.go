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

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormDocumentRepository) WithTx(tx *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: tx}
}

// Create creates a new document record
func (r *GormDocumentRepository) Create(ctx context.Context, d *project.Document) error {
	model := models.DocumentModelFromDomain(d)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing document record
func (r *GormDocumentRepository) Update(ctx context.Context, d *project.Document) error {
	model := models.DocumentModelFromDomain(d)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a document record
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a document by ID without scoping
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a document whose project is within the user's scope
func (r *GormDocumentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Document, error) {
	db := r.db.WithContext(ctx)
	var model models.DocumentModel
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

// FindAllForUser returns the user's visible documents, newest first
func (r *GormDocumentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.DocumentFilter) ([]*project.Document, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.DocumentModel{}).
		Where("project_id IN (?)", visibleProjectIDs(db, userID))

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documentModels []*models.DocumentModel
	if err := query.
		Order("created_at desc").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&documentModels).Error; err != nil {
		return nil, 0, err
	}

	documents := make([]*project.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = model.ToDomain()
	}

	return documents, total, nil
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ project.DocumentRepository = (*GormDocumentRepository)(nil)
