package project

import (
	"strings"
	"time"

	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Comment belongs to exactly one task and may additionally be tagged to a
// project. Its effective project is the tag if set, otherwise the task's
// project; visibility scoping uses the effective project.
type Comment struct {
	shared.BaseAggregateRoot
	TaskID    uuid.UUID
	ProjectID *uuid.UUID
	AuthorID  uuid.UUID
	Content   string
}

// NewComment creates a new comment on a task
func NewComment(taskID uuid.UUID, projectID *uuid.UUID, authorID uuid.UUID, content string) (*Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	return &Comment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TaskID:            taskID,
		ProjectID:         projectID,
		AuthorID:          authorID,
		Content:           strings.TrimSpace(content),
	}, nil
}

// SetContent replaces the comment body
func (c *Comment) SetContent(content string) error {
	if err := validateCommentContent(content); err != nil {
		return err
	}

	c.Content = strings.TrimSpace(content)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// EffectiveProjectID resolves the project the comment counts against.
// taskProjectID is the project of the comment's task.
func (c *Comment) EffectiveProjectID(taskProjectID uuid.UUID) uuid.UUID {
	if c.ProjectID != nil {
		return *c.ProjectID
	}
	return taskProjectID
}

// IsAuthoredBy reports whether the user wrote this comment. Detail reads
// and mutations are restricted to the author.
func (c *Comment) IsAuthoredBy(userID uuid.UUID) bool {
	return c.AuthorID == userID
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_COMMENT", "Comment content cannot be empty")
	}
	return nil
}
