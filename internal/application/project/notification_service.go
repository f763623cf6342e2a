package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService exposes the per-user inbox. Items are created only as
// a side effect of task assignment; the single client mutation is the
// idempotent mark-read transition.
type NotificationService struct {
	notificationRepo project.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo project.NotificationRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List retrieves the caller's inbox, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, filter project.PageFilter) ([]NotificationResponse, int64, error) {
	notifications, total, err := s.notificationRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}

	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toNotificationResponse(n)
	}

	return responses, total, nil
}

// UnreadCount returns the number of unread items in the caller's inbox
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count unread notifications", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count notifications")
	}
	return count, nil
}

// MarkRead flips a notification to read. Marking an already-read item again
// succeeds without effect. Another user's notification is an authorization
// failure, not a not-found: the inbox is personal, there is no scope to
// keep ambiguous.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if n.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot mark another user's notification as read")
	}

	if !n.IsRead {
		n.MarkRead()
		if err := s.notificationRepo.Update(ctx, n); err != nil {
			s.logger.Error("Failed to mark notification read", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update notification")
		}
	}

	response := toNotificationResponse(n)
	return &response, nil
}
