package models

import (
	"time"

	"github.com/projecthub/backend/internal/domain/project"
	"github.com/google/uuid"
)

// ProjectModel is the persistence model for the Project aggregate.
// The member set lives in project_members and is loaded by the repository.
type ProjectModel struct {
	OwnedAggregateModel
	Name        string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Status      project.ProjectStatus `gorm:"type:varchar(20);not null;default:'active'"`
	StartDate   *time.Time            `gorm:"type:date"`
	EndDate     *time.Time            `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
// MemberIDs must be loaded separately by the repository.
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Description:        m.Description,
		Status:             m.Status,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		MemberIDs:          make([]uuid.UUID, 0),
	}
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Status = p.Status
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
}

// ProjectModelFromDomain creates a new persistence model from a domain Project entity.
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// ProjectMemberModel is the persistence model for project membership.
type ProjectMemberModel struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProjectMemberModel) TableName() string {
	return "project_members"
}

// TaskModel is the persistence model for the Task aggregate.
type TaskModel struct {
	OwnedAggregateModel
	ProjectID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title       string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:text"`
	Status      project.TaskStatus   `gorm:"type:varchar(20);not null;default:'todo'"`
	Priority    project.TaskPriority `gorm:"type:varchar(20);not null;default:'medium'"`
	AssigneeID  *uuid.UUID           `gorm:"type:uuid;index"`
	DueDate     *time.Time           `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task entity.
func (m *TaskModel) ToDomain() *project.Task {
	return &project.Task{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		ProjectID:          m.ProjectID,
		Title:              m.Title,
		Description:        m.Description,
		Status:             m.Status,
		Priority:           m.Priority,
		AssigneeID:         m.AssigneeID,
		DueDate:            m.DueDate,
	}
}

// FromDomain populates the persistence model from a domain Task entity.
func (m *TaskModel) FromDomain(t *project.Task) {
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	m.ProjectID = t.ProjectID
	m.Title = t.Title
	m.Description = t.Description
	m.Status = t.Status
	m.Priority = t.Priority
	m.AssigneeID = t.AssigneeID
	m.DueDate = t.DueDate
}

// TaskModelFromDomain creates a new persistence model from a domain Task entity.
func TaskModelFromDomain(t *project.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}

// DocumentModel is the persistence model for the Document aggregate.
type DocumentModel struct {
	OwnedAggregateModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	FileKey     string    `gorm:"type:varchar(500);not null"`
	FileSize    int64     `gorm:"not null;default:0"`
	ContentType string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *project.Document {
	return &project.Document{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		ProjectID:          m.ProjectID,
		Name:               m.Name,
		Description:        m.Description,
		FileKey:            m.FileKey,
		FileSize:           m.FileSize,
		ContentType:        m.ContentType,
	}
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *project.Document) {
	m.FromDomainOwnedAggregateRoot(d.OwnedAggregateRoot)
	m.ProjectID = d.ProjectID
	m.Name = d.Name
	m.Description = d.Description
	m.FileKey = d.FileKey
	m.FileSize = d.FileSize
	m.ContentType = d.ContentType
}

// DocumentModelFromDomain creates a new persistence model from a domain Document entity.
func DocumentModelFromDomain(d *project.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// CommentModel is the persistence model for the Comment aggregate.
type CommentModel struct {
	AggregateModel
	TaskID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content   string     `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment entity.
func (m *CommentModel) ToDomain() *project.Comment {
	return &project.Comment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TaskID:            m.TaskID,
		ProjectID:         m.ProjectID,
		AuthorID:          m.AuthorID,
		Content:           m.Content,
	}
}

// FromDomain populates the persistence model from a domain Comment entity.
func (m *CommentModel) FromDomain(c *project.Comment) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.TaskID = c.TaskID
	m.ProjectID = c.ProjectID
	m.AuthorID = c.AuthorID
	m.Content = c.Content
}

// CommentModelFromDomain creates a new persistence model from a domain Comment entity.
func CommentModelFromDomain(c *project.Comment) *CommentModel {
	m := &CommentModel{}
	m.FromDomain(c)
	return m
}

// TimelineEventModel is the persistence model for timeline events.
// Rows are append-only; there is no update path.
type TimelineEventModel struct {
	BaseModel
	ProjectID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	EventType   project.TimelineEventType `gorm:"type:varchar(30);not null"`
	Description string                    `gorm:"type:text;not null"`
	ActorID     uuid.UUID                 `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (TimelineEventModel) TableName() string {
	return "timeline_events"
}

// ToDomain converts the persistence model to a domain TimelineEvent.
func (m *TimelineEventModel) ToDomain() *project.TimelineEvent {
	return &project.TimelineEvent{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProjectID:   m.ProjectID,
		EventType:   m.EventType,
		Description: m.Description,
		ActorID:     m.ActorID,
	}
}

// FromDomain populates the persistence model from a domain TimelineEvent.
func (m *TimelineEventModel) FromDomain(e *project.TimelineEvent) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ProjectID = e.ProjectID
	m.EventType = e.EventType
	m.Description = e.Description
	m.ActorID = e.ActorID
}

// TimelineEventModelFromDomain creates a new persistence model from a domain TimelineEvent.
func TimelineEventModelFromDomain(e *project.TimelineEvent) *TimelineEventModel {
	m := &TimelineEventModel{}
	m.FromDomain(e)
	return m
}

// NotificationModel is the persistence model for notifications.
type NotificationModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title   string    `gorm:"type:varchar(255);not null"`
	Message string    `gorm:"type:text;not null"`
	IsRead  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() *project.Notification {
	return &project.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Title:      m.Title,
		Message:    m.Message,
		IsRead:     m.IsRead,
	}
}

// FromDomain populates the persistence model from a domain Notification.
func (m *NotificationModel) FromDomain(n *project.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.Title = n.Title
	m.Message = n.Message
	m.IsRead = n.IsRead
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification.
func NotificationModelFromDomain(n *project.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
