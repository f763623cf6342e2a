package handler

import (
	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommentHandler handles comment-related API endpoints
type CommentHandler struct {
	BaseHandler
	commentService *projectapp.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *projectapp.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateCommentRequest represents a request to add a comment to a task
type CreateCommentRequest struct {
	TaskID    string  `json:"task_id" binding:"required,uuid"`
	ProjectID *string `json:"project_id" binding:"omitempty,uuid"`
	Content   string  `json:"content" binding:"required,notblank,max=5000"`
}

// UpdateCommentRequest represents a request to edit a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank,max=5000"`
}

// ListCommentsRequest represents query parameters for listing comments
type ListCommentsRequest struct {
	dto.ListRequest
	TaskID    string `form:"task" binding:"omitempty,uuid"`
	ProjectID string `form:"project" binding:"omitempty,uuid"`
}

// Create adds a comment to a task
func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	appReq := projectapp.CreateCommentRequest{
		TaskID:  taskID,
		Content: req.Content,
	}
	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			h.BadRequest(c, "Invalid project ID format")
			return
		}
		appReq.ProjectID = &projectID
	}

	result, err := h.commentService.Create(c.Request.Context(), userID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves one of the caller's own comments
func (h *CommentHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID format")
		return
	}

	result, err := h.commentService.GetByID(c.Request.Context(), userID, commentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves the caller's comments
func (h *CommentHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := project.CommentFilter{
		PageFilter: project.PageFilter{Page: req.Page, PageSize: req.PageSize},
	}
	if req.TaskID != "" {
		taskID, err := uuid.Parse(req.TaskID)
		if err != nil {
			h.BadRequest(c, "Invalid task ID format")
			return
		}
		filter.TaskID = &taskID
	}
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			h.BadRequest(c, "Invalid project ID format")
			return
		}
		filter.ProjectID = &projectID
	}

	results, total, err := h.commentService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// Update edits one of the caller's own comments
func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID format")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.commentService.Update(c.Request.Context(), userID, commentID, req.Content)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes one of the caller's own comments
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID format")
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, commentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
