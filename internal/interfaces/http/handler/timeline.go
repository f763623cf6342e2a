package handler

import (
	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TimelineHandler serves the activity feed endpoints
type TimelineHandler struct {
	BaseHandler
	timelineService *projectapp.TimelineService
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(timelineService *projectapp.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
	}
}

// ListTimelineRequest represents query parameters for the activity feed
type ListTimelineRequest struct {
	dto.ListRequest
	ProjectID string `form:"project" binding:"omitempty,uuid"`
}

// List retrieves timeline events across the caller's visible projects,
// newest first
func (h *TimelineHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListTimelineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := project.TimelineFilter{
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

	results, total, err := h.timelineService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}
