package project

import (
	"context"
	"fmt"
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService handles document business operations. Payloads live in
// object storage; the database row keeps the blob key and metadata.
type DocumentService struct {
	documentRepo project.DocumentRepository
	projectRepo  project.ProjectRepository
	userRepo     identity.UserRepository
	storage      ObjectStorageService
	uow          UnitOfWork
	keyPrefix    string
	presignTTL   time.Duration
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo project.DocumentRepository,
	projectRepo project.ProjectRepository,
	userRepo identity.UserRepository,
	storage ObjectStorageService,
	uow UnitOfWork,
	keyPrefix string,
	presignTTL time.Duration,
	logger *zap.Logger,
) *DocumentService {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &DocumentService{
		documentRepo: documentRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		storage:      storage,
		uow:          uow,
		keyPrefix:    keyPrefix,
		presignTTL:   presignTTL,
		logger:       logger,
	}
}

// Upload stores the payload in object storage, then records the document
// row and its document_uploaded ledger entry in one transaction. If the
// transaction fails the stored object is deleted best effort.
func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, req UploadDocumentRequest) (*DocumentResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "Uploaded file is empty")
	}

	fileKey := fmt.Sprintf("%s%s/%s", s.keyPrefix, p.ID, uuid.New())

	d, err := project.NewDocument(p.ID, userID, req.Name, fileKey, int64(len(req.Data)), req.ContentType)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		d.SetDescription(req.Description)
	}

	if err := s.storage.Upload(ctx, fileKey, req.Data, req.ContentType); err != nil {
		s.logger.Error("Failed to store document payload", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store file")
	}

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		if err := repos.Documents.Create(ctx, d); err != nil {
			return err
		}
		return repos.Timeline.Append(ctx, project.NewDocumentUploadedEntry(d, p.Name, userID))
	})
	if err != nil {
		s.logger.Error("Failed to record document", zap.Error(err))
		if delErr := s.storage.DeleteObject(ctx, fileKey); delErr != nil {
			s.logger.Warn("Failed to clean up stored payload",
				zap.String("file_key", fileKey), zap.Error(delErr))
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to upload document")
	}

	s.logger.Info("Document uploaded",
		zap.String("document_id", d.ID.String()),
		zap.String("project_id", p.ID.String()),
		zap.Int64("file_size", d.FileSize))

	return s.toResponse(ctx, newUserResolver(s.userRepo), d, p.Name, ""), nil
}

// GetByID retrieves a visible document with a presigned download URL
func (s *DocumentService) GetByID(ctx context.Context, userID, id uuid.UUID) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	downloadURL := ""
	if url, _, err := s.storage.GenerateDownloadURL(ctx, d.FileKey, s.presignTTL); err == nil {
		downloadURL = url
	} else {
		s.logger.Warn("Failed to presign download URL",
			zap.String("document_id", d.ID.String()), zap.Error(err))
	}

	return s.toResponse(ctx, newUserResolver(s.userRepo), d, s.projectName(ctx, d.ProjectID), downloadURL), nil
}

// List retrieves the caller's visible documents, newest first
func (s *DocumentService) List(ctx context.Context, userID uuid.UUID, filter project.DocumentFilter) ([]DocumentResponse, int64, error) {
	documents, total, err := s.documentRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list documents", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list documents")
	}

	resolver := newUserResolver(s.userRepo)
	names := make(map[uuid.UUID]string)
	responses := make([]DocumentResponse, len(documents))
	for i, d := range documents {
		name, ok := names[d.ProjectID]
		if !ok {
			name = s.projectName(ctx, d.ProjectID)
			names[d.ProjectID] = name
		}
		responses[i] = *s.toResponse(ctx, resolver, d, name, "")
	}

	return responses, total, nil
}

// Update updates document metadata. The payload itself is immutable;
// replacing a file means uploading a new document.
func (s *DocumentService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := d.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		d.SetDescription(*req.Description)
	}

	if err := s.documentRepo.Update(ctx, d); err != nil {
		s.logger.Error("Failed to update document", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update document")
	}

	s.logger.Info("Document updated", zap.String("document_id", id.String()))

	return s.toResponse(ctx, newUserResolver(s.userRepo), d, s.projectName(ctx, d.ProjectID), ""), nil
}

// Delete removes a visible document row and its stored payload. The blob
// delete is best effort; an orphaned object is preferable to a row whose
// payload is gone.
func (s *DocumentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	d, err := s.documentRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, d.ID); err != nil {
		s.logger.Error("Failed to delete document", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete document")
	}

	if err := s.storage.DeleteObject(ctx, d.FileKey); err != nil {
		s.logger.Warn("Failed to delete stored payload",
			zap.String("file_key", d.FileKey), zap.Error(err))
	}

	s.logger.Info("Document deleted", zap.String("document_id", id.String()))

	return nil
}

func (s *DocumentService) projectName(ctx context.Context, projectID uuid.UUID) string {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return ""
	}
	return p.Name
}

func (s *DocumentService) toResponse(ctx context.Context, resolver *userResolver, d *project.Document, projectName, downloadURL string) *DocumentResponse {
	return &DocumentResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		ProjectName: projectName,
		Name:        d.Name,
		Description: d.Description,
		FileSize:    d.FileSize,
		ContentType: d.ContentType,
		UploadedBy:  resolver.brief(ctx, d.CreatedBy),
		DownloadURL: downloadURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
