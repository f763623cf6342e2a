package project

import (
	"fmt"

	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TimelineEventType is the closed set of activity kinds recorded on a
// project's timeline. Keeping the set closed lets switches over it be
// checked for exhaustiveness.
type TimelineEventType string

const (
	EventProjectCreated   TimelineEventType = "project_created"
	EventTaskCreated      TimelineEventType = "task_created"
	EventTaskAssigned     TimelineEventType = "task_assigned"
	EventTaskCompleted    TimelineEventType = "task_completed"
	EventDocumentUploaded TimelineEventType = "document_uploaded"
	EventCommentAdded     TimelineEventType = "comment_added"
)

// IsValid reports whether the event type is one of the known values.
// Note: task_completed is part of the enum but no mutation currently
// emits it.
func (t TimelineEventType) IsValid() bool {
	switch t {
	case EventProjectCreated, EventTaskCreated, EventTaskAssigned,
		EventTaskCompleted, EventDocumentUploaded, EventCommentAdded:
		return true
	}
	return false
}

// TimelineEvent is one immutable entry in a project's activity ledger.
// Entries are only ever appended as a side effect of another mutation,
// never created, updated, or deleted directly by a client.
type TimelineEvent struct {
	shared.BaseEntity
	ProjectID   uuid.UUID
	EventType   TimelineEventType
	Description string
	ActorID     uuid.UUID
}

func newTimelineEvent(projectID, actorID uuid.UUID, eventType TimelineEventType, description string) *TimelineEvent {
	return &TimelineEvent{
		BaseEntity:  shared.NewBaseEntity(),
		ProjectID:   projectID,
		EventType:   eventType,
		Description: description,
		ActorID:     actorID,
	}
}

// NewProjectCreatedEntry records the creation of a project
func NewProjectCreatedEntry(p *Project, actorID uuid.UUID) *TimelineEvent {
	return newTimelineEvent(p.ID, actorID, EventProjectCreated,
		fmt.Sprintf("Project '%s' created.", p.Name))
}

// NewTaskCreatedEntry records the creation of a task in a project
func NewTaskCreatedEntry(t *Task, projectName string, actorID uuid.UUID) *TimelineEvent {
	return newTimelineEvent(t.ProjectID, actorID, EventTaskCreated,
		fmt.Sprintf("Task '%s' created in project '%s'.", t.Title, projectName))
}

// NewTaskAssignedEntry records the assignment of a task to a user
func NewTaskAssignedEntry(t *Task, assigneeUsername string, actorID uuid.UUID) *TimelineEvent {
	return newTimelineEvent(t.ProjectID, actorID, EventTaskAssigned,
		fmt.Sprintf("Task '%s' assigned to %s.", t.Title, assigneeUsername))
}

// NewDocumentUploadedEntry records a document upload to a project
func NewDocumentUploadedEntry(d *Document, projectName string, actorID uuid.UUID) *TimelineEvent {
	return newTimelineEvent(d.ProjectID, actorID, EventDocumentUploaded,
		fmt.Sprintf("Document '%s' uploaded to project '%s'.", d.Name, projectName))
}

// NewCommentAddedEntry records a comment added under a project
func NewCommentAddedEntry(projectID uuid.UUID, authorUsername string, actorID uuid.UUID) *TimelineEvent {
	return newTimelineEvent(projectID, actorID, EventCommentAdded,
		fmt.Sprintf("Comment was added by %s.", authorUsername))
}
