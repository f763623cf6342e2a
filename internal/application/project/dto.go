package project

import (
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/google/uuid"
)

// UserBrief is the read-only user block inlined into responses
type UserBrief struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
}

// CreateProjectRequest contains the input for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	MemberIDs   []uuid.UUID
}

// UpdateProjectRequest contains the input for updating a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string
	Description *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	ClearDates  bool
	MemberIDs   *[]uuid.UUID
}

// ProjectResponse mirrors a project with inlined display fields
type ProjectResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	StartDate     *time.Time  `json:"start_date,omitempty"`
	EndDate       *time.Time  `json:"end_date,omitempty"`
	Owner         UserBrief   `json:"owner"`
	Members       []UserBrief `json:"members"`
	MemberCount   int64       `json:"member_count"`
	TaskCount     int64       `json:"task_count"`
	DocumentCount int64       `json:"document_count"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CreateTaskRequest contains the input for creating a task
type CreateTaskRequest struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      *string
	Priority    *string
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// UpdateTaskRequest contains the input for updating a task.
// Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	AssigneeID    *uuid.UUID
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
}

// TaskResponse mirrors a task with inlined display fields
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	ProjectName string     `json:"project_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Assignee    *UserBrief `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UploadDocumentRequest contains the input for uploading a document
type UploadDocumentRequest struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
	Data        []byte
	ContentType string
}

// UpdateDocumentRequest contains the input for updating document metadata
type UpdateDocumentRequest struct {
	Name        *string
	Description *string
}

// DocumentResponse mirrors a document record. DownloadURL is only populated
// on detail reads.
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	UploadedBy  UserBrief `json:"uploaded_by"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommentRequest contains the input for creating a comment
type CreateCommentRequest struct {
	TaskID    uuid.UUID
	ProjectID *uuid.UUID
	Content   string
}

// CommentResponse mirrors a comment with the author inlined
type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    uuid.UUID  `json:"task_id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Author    UserBrief  `json:"author"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TimelineEventResponse mirrors one activity ledger entry
type TimelineEventResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	Actor       UserBrief `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationResponse mirrors one inbox item
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserBrief(u *identity.User) UserBrief {
	if u == nil {
		return UserBrief{}
	}
	return UserBrief{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

func toCommentResponse(c *project.Comment, author UserBrief) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		ProjectID: c.ProjectID,
		Author:    author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTimelineEventResponse(e *project.TimelineEvent, actor UserBrief) TimelineEventResponse {
	return TimelineEventResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		EventType:   string(e.EventType),
		Description: e.Description,
		Actor:       actor,
		CreatedAt:   e.CreatedAt,
	}
}

func toNotificationResponse(n *project.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
