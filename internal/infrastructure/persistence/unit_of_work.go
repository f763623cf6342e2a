package persistence

import (
	"context"

	projectapp "github.com/projecthub/backend/internal/application/project"
	"gorm.io/gorm"
)

// GormUnitOfWork runs project-context mutations inside one database
// transaction, handing the callback repositories bound to that transaction.
type GormUnitOfWork struct {
	db            *gorm.DB
	projects      *GormProjectRepository
	tasks         *GormTaskRepository
	documents     *GormDocumentRepository
	comments      *GormCommentRepository
	timeline      *GormTimelineRepository
	notifications *GormNotificationRepository
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{
		db:            db,
		projects:      NewGormProjectRepository(db),
		tasks:         NewGormTaskRepository(db),
		documents:     NewGormDocumentRepository(db),
		comments:      NewGormCommentRepository(db),
		timeline:      NewGormTimelineRepository(db),
		notifications: NewGormNotificationRepository(db),
	}
}

// Ensure GormUnitOfWork implements the application contract
var _ projectapp.UnitOfWork = (*GormUnitOfWork)(nil)

// Execute runs fn within a transaction. A non-nil error from fn rolls the
// whole batch back.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos projectapp.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(projectapp.TxRepos{
			Projects:      u.projects.WithTx(tx),
			Tasks:         u.tasks.WithTx(tx),
			Documents:     u.documents.WithTx(tx),
			Comments:      u.comments.WithTx(tx),
			Timeline:      u.timeline.WithTx(tx),
			Notifications: u.notifications.WithTx(tx),
		})
	})
}
