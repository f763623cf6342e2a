package project

import (
	"context"

	"github.com/google/uuid"
)

// PageFilter carries pagination shared by all list queries in this context.
// Results are always ordered newest first.
type PageFilter struct {
	Page     int
	PageSize int
}

// NewPageFilter returns a filter with default values
func NewPageFilter() PageFilter {
	return PageFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// ProjectStats carries the display counts inlined into project responses
type ProjectStats struct {
	MemberCount   int64
	TaskCount     int64
	DocumentCount int64
}

// ProjectRepository persists projects and their member sets.
// Every *ForUser read applies the visibility predicate (owner or member);
// an id outside the caller's scope yields shared.ErrNotFound, never a
// permission error.
type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	// Delete removes the project and cascades to its tasks, documents,
	// comments, timeline events, and memberships.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Project, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter PageFilter) ([]*Project, int64, error)
	// SaveMembers replaces the stored member set with p.MemberIDs
	SaveMembers(ctx context.Context, p *Project) error
	Stats(ctx context.Context, projectID uuid.UUID) (ProjectStats, error)
}

// TaskFilter narrows task list queries
type TaskFilter struct {
	PageFilter
	ProjectID  *uuid.UUID
	Status     *TaskStatus
	AssigneeID *uuid.UUID
}

// TaskRepository persists tasks
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	// Delete removes the task and cascades to its comments
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Task, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*Task, int64, error)
}

// DocumentFilter narrows document list queries
type DocumentFilter struct {
	PageFilter
	ProjectID *uuid.UUID
}

// DocumentRepository persists document records (blob payloads live in
// object storage)
type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Document, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter DocumentFilter) ([]*Document, int64, error)
}

// CommentFilter narrows comment list queries
type CommentFilter struct {
	PageFilter
	ProjectID *uuid.UUID
	TaskID    *uuid.UUID
}

// CommentRepository persists comments. List reads scope by the effective
// project's visibility; detail reads return the row unscoped and leave the
// author check to the caller.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter CommentFilter) ([]*Comment, int64, error)
}

// TimelineFilter narrows timeline list queries
type TimelineFilter struct {
	PageFilter
	ProjectID *uuid.UUID
}

// TimelineRepository is the append-only activity ledger
type TimelineRepository interface {
	Append(ctx context.Context, e *TimelineEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*TimelineEvent, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter TimelineFilter) ([]*TimelineEvent, int64, error)
}

// NotificationRepository persists per-user inbox items
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	Update(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter PageFilter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
