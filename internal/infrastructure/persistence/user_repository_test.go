package persistence

import (
	"context"
	"testing"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/projecthub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStoredUser(t *testing.T, username string) *identity.User {
	t.Helper()
	return &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             username + "@example.com",
		PasswordHash:      "hashed",
		Status:            identity.UserStatusActive,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupProjectContextDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newStoredUser(t, "alice")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, identity.UserStatusActive, found.Status)
	})

	t.Run("finds by username case-insensitively", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Alice@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("reports existence", func(t *testing.T) {
		exists, err := repo.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepository_FindAll(t *testing.T) {
	db := setupProjectContextDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStoredUser(t, "alice")))
	require.NoError(t, repo.Create(ctx, newStoredUser(t, "bob")))
	require.NoError(t, repo.Create(ctx, newStoredUser(t, "carol")))

	t.Run("returns all users", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.UserFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 3)
	})

	t.Run("filters by keyword", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Keyword: "BO"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Username)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupProjectContextDB(t)
	repo := NewGormUserRepository(db)
	projectRepo := NewGormProjectRepository(db)
	taskRepo := NewGormTaskRepository(db)
	ctx := context.Background()

	owner := newStoredUser(t, "alice")
	require.NoError(t, repo.Create(ctx, owner))
	leaver := newStoredUser(t, "bob")
	require.NoError(t, repo.Create(ctx, leaver))

	ownProject := seedProject(t, db, leaver.ID, "Bob's project")
	otherProject := seedProject(t, db, owner.ID, "Alpha", leaver.ID)

	task, err := projectTask(t, db, otherProject.ID, owner.ID, "Fix bug")
	require.NoError(t, err)
	task.AssignTo(leaver.ID)
	require.NoError(t, taskRepo.Update(ctx, task))

	require.NoError(t, repo.Delete(ctx, leaver.ID))

	t.Run("removes the user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, leaver.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cascades owned projects", func(t *testing.T) {
		_, err := projectRepo.FindByID(ctx, ownProject.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("keeps other projects but drops the membership", func(t *testing.T) {
		found, err := projectRepo.FindByID(ctx, otherProject.ID)
		require.NoError(t, err)
		assert.Empty(t, found.MemberIDs)
	})

	t.Run("nulls task assignments", func(t *testing.T) {
		found, err := taskRepo.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, found.AssigneeID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// projectTask creates and persists a task for delete-cascade tests
func projectTask(t *testing.T, db *gorm.DB, projectID, createdBy uuid.UUID, title string) (*project.Task, error) {
	t.Helper()
	task, err := project.NewTask(projectID, createdBy, title, "")
	if err != nil {
		return nil, err
	}
	if err := db.Create(models.TaskModelFromDomain(task)).Error; err != nil {
		return nil, err
	}
	return task, nil
}
