package project

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	taskID := uuid.New()
	author := uuid.New()

	t.Run("creates comment on task", func(t *testing.T) {
		c, err := NewComment(taskID, nil, author, "looks good")

		require.NoError(t, err)
		assert.Equal(t, taskID, c.TaskID)
		assert.Equal(t, author, c.AuthorID)
		assert.Nil(t, c.ProjectID)
	})

	t.Run("fails with blank content", func(t *testing.T) {
		_, err := NewComment(taskID, nil, author, "   ")

		assert.Error(t, err)
	})
}

func TestComment_EffectiveProjectID(t *testing.T) {
	taskProject := uuid.New()
	tagged := uuid.New()
	author := uuid.New()

	t.Run("falls back to the task's project", func(t *testing.T) {
		c, _ := NewComment(uuid.New(), nil, author, "hi")

		assert.Equal(t, taskProject, c.EffectiveProjectID(taskProject))
	})

	t.Run("explicit project tag wins", func(t *testing.T) {
		c, _ := NewComment(uuid.New(), &tagged, author, "hi")

		assert.Equal(t, tagged, c.EffectiveProjectID(taskProject))
	})
}

func TestComment_IsAuthoredBy(t *testing.T) {
	author := uuid.New()
	c, _ := NewComment(uuid.New(), nil, author, "hi")

	assert.True(t, c.IsAuthoredBy(author))
	assert.False(t, c.IsAuthoredBy(uuid.New()))
}
