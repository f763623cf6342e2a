package project

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	owner := uuid.New()

	t.Run("creates active project owned by creator", func(t *testing.T) {
		p, err := NewProject(owner, "Alpha", "first project")

		require.NoError(t, err)
		assert.Equal(t, "Alpha", p.Name)
		assert.Equal(t, owner, p.CreatedBy)
		assert.Equal(t, ProjectStatusActive, p.Status)
		assert.Empty(t, p.MemberIDs)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ProjectCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProject(owner, "   ", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		_, err := NewProject(owner, strings.Repeat("x", 201), "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})
}

func TestProject_IsVisibleTo(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()

	p, err := NewProject(owner, "Alpha", "")
	require.NoError(t, err)
	p.AddMember(member)

	t.Run("visible to owner", func(t *testing.T) {
		assert.True(t, p.IsVisibleTo(owner))
	})

	t.Run("visible to member", func(t *testing.T) {
		assert.True(t, p.IsVisibleTo(member))
	})

	t.Run("not visible to unrelated user", func(t *testing.T) {
		assert.False(t, p.IsVisibleTo(stranger))
	})
}

func TestProject_Members(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()

	t.Run("adding owner as member is a no-op", func(t *testing.T) {
		p, _ := NewProject(owner, "Alpha", "")
		p.AddMember(owner)

		assert.Empty(t, p.MemberIDs)
		assert.True(t, p.IsVisibleTo(owner))
	})

	t.Run("adding same member twice keeps one entry", func(t *testing.T) {
		p, _ := NewProject(owner, "Alpha", "")
		p.AddMember(member)
		p.AddMember(member)

		assert.Len(t, p.MemberIDs, 1)
	})

	t.Run("removing a member revokes visibility", func(t *testing.T) {
		p, _ := NewProject(owner, "Alpha", "")
		p.AddMember(member)
		p.RemoveMember(member)

		assert.False(t, p.IsVisibleTo(member))
	})
}

func TestProject_SetDates(t *testing.T) {
	owner := uuid.New()
	p, _ := NewProject(owner, "Alpha", "")

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	t.Run("accepts ordered range", func(t *testing.T) {
		require.NoError(t, p.SetDates(&start, &end))
		assert.Equal(t, &start, p.StartDate)
		assert.Equal(t, &end, p.EndDate)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		inverted := start.AddDate(0, 0, -1)
		err := p.SetDates(&start, &inverted)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "before start date")
	})

	t.Run("accepts open-ended range", func(t *testing.T) {
		require.NoError(t, p.SetDates(&start, nil))
		assert.Nil(t, p.EndDate)
	})
}

func TestProject_SetStatus(t *testing.T) {
	owner := uuid.New()
	p, _ := NewProject(owner, "Alpha", "")

	t.Run("accepts known statuses", func(t *testing.T) {
		for _, s := range []ProjectStatus{ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled, ProjectStatusActive} {
			require.NoError(t, p.SetStatus(s))
			assert.Equal(t, s, p.Status)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		assert.Error(t, p.SetStatus("archived"))
	})
}
