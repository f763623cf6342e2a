package handler

import (
	"io"

	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles document-related API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *projectapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *projectapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// UploadDocumentForm represents the multipart form for document upload
type UploadDocumentForm struct {
	ProjectID   string `form:"project_id" binding:"required,uuid"`
	Name        string `form:"name" binding:"omitempty,max=255"`
	Description string `form:"description" binding:"omitempty,max=2000"`
}

// UpdateDocumentRequest represents a request to update document metadata
type UpdateDocumentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// ListDocumentsRequest represents query parameters for listing documents
type ListDocumentsRequest struct {
	dto.ListRequest
	ProjectID string `form:"project" binding:"omitempty,uuid"`
}

// Upload stores a new document payload and its metadata
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var form UploadDocumentForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	projectID, err := uuid.Parse(form.ProjectID)
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file in request")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	name := form.Name
	if name == "" {
		name = fileHeader.Filename
	}

	result, err := h.documentService.Upload(c.Request.Context(), userID, projectapp.UploadDocumentRequest{
		ProjectID:   projectID,
		Name:        name,
		Description: form.Description,
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a document with a fresh download URL
func (h *DocumentHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.documentService.GetByID(c.Request.Context(), userID, documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves documents across the caller's visible projects
func (h *DocumentHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := project.DocumentFilter{
		PageFilter: project.PageFilter{Page: req.Page, PageSize: req.PageSize},
	}
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			h.BadRequest(c, "Invalid project ID format")
			return
		}
		filter.ProjectID = &projectID
	}

	results, total, err := h.documentService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// Update updates a document's metadata
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.documentService.Update(c.Request.Context(), userID, documentID, projectapp.UpdateDocumentRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a document record and its stored payload
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), userID, documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
