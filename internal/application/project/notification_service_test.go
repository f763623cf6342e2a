package project

import (
	"context"
	"testing"

	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotificationService() (*NotificationService, *MockNotificationRepository) {
	repo := new(MockNotificationRepository)
	return NewNotificationService(repo, zap.NewNop()), repo
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks an unread notification read", func(t *testing.T) {
		svc, repo := newTestNotificationService()
		userID := uuid.New()
		n := project.NewTaskAssignedNotification(userID, "Fix login", "Apollo")

		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)
		repo.On("Update", mock.Anything, n).Return(nil)

		resp, err := svc.MarkRead(ctx, userID, n.ID)

		require.NoError(t, err)
		assert.True(t, resp.IsRead)
		repo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("marking an already-read notification is a no-op", func(t *testing.T) {
		svc, repo := newTestNotificationService()
		userID := uuid.New()
		n := project.NewTaskAssignedNotification(userID, "Fix login", "Apollo")
		n.MarkRead()

		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

		resp, err := svc.MarkRead(ctx, userID, n.ID)

		require.NoError(t, err)
		assert.True(t, resp.IsRead)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("another user's notification is forbidden", func(t *testing.T) {
		svc, repo := newTestNotificationService()
		n := project.NewTaskAssignedNotification(uuid.New(), "Fix login", "Apollo")

		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

		_, err := svc.MarkRead(ctx, uuid.New(), n.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		assert.False(t, n.IsRead)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown notification reports not found", func(t *testing.T) {
		svc, repo := newTestNotificationService()
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.MarkRead(ctx, uuid.New(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("lists the caller's inbox", func(t *testing.T) {
		svc, repo := newTestNotificationService()
		userID := uuid.New()
		items := []*project.Notification{
			project.NewTaskAssignedNotification(userID, "Fix login", "Apollo"),
			project.NewTaskAssignedNotification(userID, "Write docs", "Apollo"),
		}

		repo.On("FindAllForUser", mock.Anything, userID, project.PageFilter{Page: 1, PageSize: 20}).
			Return(items, int64(2), nil)

		resps, total, err := svc.List(ctx, userID, project.PageFilter{Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, resps, 2)
		assert.Equal(t, "New Task Assigned: Fix login", resps[0].Title)
	})
}

func TestNotificationService_UnreadCount(t *testing.T) {
	svc, repo := newTestNotificationService()
	userID := uuid.New()

	repo.On("CountUnread", mock.Anything, userID).Return(int64(3), nil)

	count, err := svc.UnreadCount(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
