package project

import (
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeProject = "Project"
	AggregateTypeTask    = "Task"
)

// Domain event types
const (
	EventTypeProjectCreated = "ProjectCreated"
	EventTypeTaskAssigned   = "TaskAssigned"
)

// ProjectCreatedEvent is published when a project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeProject, p.ID),
		Name:            p.Name,
		CreatedBy:       p.CreatedBy,
	}
}

// TaskAssignedEvent is published when a task is assigned to a user
type TaskAssignedEvent struct {
	shared.BaseDomainEvent
	ProjectID  uuid.UUID `json:"project_id"`
	AssigneeID uuid.UUID `json:"assignee_id"`
	Title      string    `json:"title"`
}

// NewTaskAssignedEvent creates a new TaskAssignedEvent
func NewTaskAssignedEvent(t *Task, assigneeID uuid.UUID) *TaskAssignedEvent {
	return &TaskAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskAssigned, AggregateTypeTask, t.ID),
		ProjectID:       t.ProjectID,
		AssigneeID:      assigneeID,
		Title:           t.Title,
	}
}
