package project

import (
	"strings"
	"time"

	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid reports whether the status is one of the known values
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid reports whether the priority is one of the known values
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task belongs to exactly one project and is optionally assigned to a user
type Task struct {
	shared.OwnedAggregateRoot
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// NewTask creates a new task in the given project
func NewTask(projectID, createdBy uuid.UUID, title, description string) (*Task, error) {
	if err := validateTaskTitle(title); err != nil {
		return nil, err
	}

	return &Task{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		ProjectID:          projectID,
		Title:              strings.TrimSpace(title),
		Description:        description,
		Status:             TaskStatusTodo,
		Priority:           TaskPriorityMedium,
	}, nil
}

// Retitle sets a new task title
func (t *Task) Retitle(title string) error {
	if err := validateTaskTitle(title); err != nil {
		return err
	}

	t.Title = strings.TrimSpace(title)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetDescription sets the task description
func (t *Task) SetDescription(description string) {
	t.Description = description
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetStatus transitions the task to the given workflow state
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown task status")
	}

	t.Status = status
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetPriority sets the task priority
func (t *Task) SetPriority(priority TaskPriority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Unknown task priority")
	}

	t.Priority = priority
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetDueDate sets or clears the due date
func (t *Task) SetDueDate(due *time.Time) {
	t.DueDate = due
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// AssignTo assigns the task to a user. Re-assigning to the same user is
// allowed; each assignment is a distinct action for the activity ledger.
func (t *Task) AssignTo(userID uuid.UUID) {
	t.AssigneeID = &userID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	t.AddDomainEvent(NewTaskAssignedEvent(t, userID))
}

// Unassign clears the assignee
func (t *Task) Unassign() {
	t.AssigneeID = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsDone reports whether the task has reached the done state
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

func validateTaskTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot exceed 200 characters")
	}
	return nil
}
