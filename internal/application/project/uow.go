package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/project"
)

// TxRepos bundles the project-context repositories bound to one database
// transaction.
type TxRepos struct {
	Projects      project.ProjectRepository
	Tasks         project.TaskRepository
	Documents     project.DocumentRepository
	Comments      project.CommentRepository
	Timeline      project.TimelineRepository
	Notifications project.NotificationRepository
}

// UnitOfWork runs fn atomically: every write made through the TxRepos
// passed to fn commits or rolls back as one. Mutations that pair a primary
// write with a timeline append (and, for assignment, a notification) go
// through here so the ledger never drifts from the data it describes.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TxRepos) error) error
}
