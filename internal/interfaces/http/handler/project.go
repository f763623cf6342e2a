package handler

import (
	"time"

	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles project-related API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *projectapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,notblank,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	MemberIDs   []string   `json:"member_ids" binding:"omitempty,dive,uuid"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active completed on_hold cancelled"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ClearDates  bool       `json:"clear_dates"`
	MemberIDs   *[]string  `json:"member_ids" binding:"omitempty,dive,uuid"`
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// Create creates a new project owned by the caller
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	memberIDs, err := parseUUIDs(req.MemberIDs)
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	result, err := h.projectService.Create(c.Request.Context(), userID, projectapp.CreateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MemberIDs:   memberIDs,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a visible project
func (h *ProjectHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	result, err := h.projectService.GetByID(c.Request.Context(), userID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves the caller's visible projects
func (h *ProjectHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	filter := project.PageFilter{Page: listReq.Page, PageSize: listReq.PageSize}
	results, total, err := h.projectService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// Update updates a visible project
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := projectapp.UpdateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ClearDates:  req.ClearDates,
	}
	if req.MemberIDs != nil {
		memberIDs, err := parseUUIDs(*req.MemberIDs)
		if err != nil {
			h.BadRequest(c, "Invalid member ID format")
			return
		}
		appReq.MemberIDs = &memberIDs
	}

	result, err := h.projectService.Update(c.Request.Context(), userID, projectID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a visible project and everything under it
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
