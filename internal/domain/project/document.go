package project

import (
	"strings"
	"time"

	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Document is an opaque file attached to a project. The payload lives in
// object storage; the aggregate only keeps the blob key and metadata.
type Document struct {
	shared.OwnedAggregateRoot
	ProjectID   uuid.UUID
	Name        string
	Description string
	FileKey     string
	FileSize    int64
	ContentType string
}

// NewDocument creates a new document record for an uploaded file
func NewDocument(projectID, uploadedBy uuid.UUID, name, fileKey string, fileSize int64, contentType string) (*Document, error) {
	if err := validateDocumentName(name); err != nil {
		return nil, err
	}
	if fileKey == "" {
		return nil, shared.NewDomainError("INVALID_FILE_KEY", "Document file key cannot be empty")
	}

	return &Document{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(uploadedBy),
		ProjectID:          projectID,
		Name:               strings.TrimSpace(name),
		FileKey:            fileKey,
		FileSize:           fileSize,
		ContentType:        contentType,
	}, nil
}

// Rename sets a new document name
func (d *Document) Rename(name string) error {
	if err := validateDocumentName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetDescription sets the document description
func (d *Document) SetDescription(description string) {
	d.Description = description
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

func validateDocumentName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document name cannot exceed 255 characters")
	}
	return nil
}
