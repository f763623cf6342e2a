package handler

import (
	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler serves the caller's notification inbox
type NotificationHandler struct {
	BaseHandler
	notificationService *projectapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *projectapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List retrieves the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
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
	results, total, err := h.notificationService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// UnreadCount returns how many of the caller's notifications are unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	result, err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
