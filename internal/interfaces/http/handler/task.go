package handler

import (
	"time"

	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles task-related API endpoints
type TaskHandler struct {
	BaseHandler
	taskService *projectapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *projectapp.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest represents a request to create a new task
type CreateTaskRequest struct {
	ProjectID   string     `json:"project_id" binding:"required,uuid"`
	Title       string     `json:"title" binding:"required,notblank,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *string    `json:"assignee_id" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	Status        *string    `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID    *string    `json:"assignee_id" binding:"omitempty,uuid"`
	ClearAssignee bool       `json:"clear_assignee"`
	DueDate       *time.Time `json:"due_date"`
	ClearDueDate  bool       `json:"clear_due_date"`
}

// AssignTaskRequest represents a request to assign a task to a user
type AssignTaskRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ListTasksRequest represents query parameters for listing tasks
type ListTasksRequest struct {
	dto.ListRequest
	ProjectID  string `form:"project" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=todo in_progress review done"`
	AssigneeID string `form:"assignee" binding:"omitempty,uuid"`
}

// Create creates a new task in a visible project
func (h *TaskHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	appReq := projectapp.CreateTaskRequest{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			h.BadRequest(c, "Invalid assignee ID format")
			return
		}
		appReq.AssigneeID = &assigneeID
	}

	result, err := h.taskService.Create(c.Request.Context(), userID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a task within a visible project
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	result, err := h.taskService.GetByID(c.Request.Context(), userID, taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves tasks across the caller's visible projects
func (h *TaskHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := project.TaskFilter{
		PageFilter: project.PageFilter{Page: req.Page, PageSize: req.PageSize},
	}
	if req.Status != "" {
		status := project.TaskStatus(req.Status)
		filter.Status = &status
	}
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			h.BadRequest(c, "Invalid project ID format")
			return
		}
		filter.ProjectID = &projectID
	}
	if req.AssigneeID != "" {
		assigneeID, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			h.BadRequest(c, "Invalid assignee ID format")
			return
		}
		filter.AssigneeID = &assigneeID
	}

	results, total, err := h.taskService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// Update updates a task within a visible project
func (h *TaskHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := projectapp.UpdateTaskRequest{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		ClearAssignee: req.ClearAssignee,
		DueDate:       req.DueDate,
		ClearDueDate:  req.ClearDueDate,
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			h.BadRequest(c, "Invalid assignee ID format")
			return
		}
		appReq.AssigneeID = &assigneeID
	}

	result, err := h.taskService.Update(c.Request.Context(), userID, taskID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Assign assigns a task to a project member and notifies them
func (h *TaskHandler) Assign(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assigneeID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	result, err := h.taskService.Assign(c.Request.Context(), userID, taskID, assigneeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a task within a visible project
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
