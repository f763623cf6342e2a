package project

import (
	"fmt"
	"time"

	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Notification is one item in a user's inbox. It is created only as a side
// effect of task assignment; the only permitted mutation afterwards is the
// false to true transition of IsRead.
type Notification struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Title   string
	Message string
	IsRead  bool
}

// NewTaskAssignedNotification builds the inbox item delivered to the
// assignee of a task.
func NewTaskAssignedNotification(assigneeID uuid.UUID, taskTitle, projectName string) *Notification {
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     assigneeID,
		Title:      fmt.Sprintf("New Task Assigned: %s", taskTitle),
		Message:    fmt.Sprintf("You have been assigned a new task: %s in project %s.", taskTitle, projectName),
	}
}

// MarkRead flips IsRead to true. Marking an already-read notification is a
// no-op; the transition never reverses.
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.UpdatedAt = time.Now()
}
