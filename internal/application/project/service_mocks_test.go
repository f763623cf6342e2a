package project

import (
	"context"
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// testUser builds an active user without going through password hashing;
// these tests never authenticate.
func testUser(username string) *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             username + "@example.com",
		Status:            identity.UserStatusActive,
	}
}

// fakeUnitOfWork passes the configured repositories straight through; there
// is no transaction to roll back in unit tests.
type fakeUnitOfWork struct {
	repos TxRepos
}

func (f *fakeUnitOfWork) Execute(_ context.Context, fn func(repos TxRepos) error) error {
	return fn(f.repos)
}

// MockProjectRepository is a mock implementation of project.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.PageFilter) ([]*project.Project, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*project.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) SaveMembers(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Stats(ctx context.Context, projectID uuid.UUID) (project.ProjectStats, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(project.ProjectStats), args.Error(1)
}

// MockTaskRepository is a mock implementation of project.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *project.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *project.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.TaskFilter) ([]*project.Task, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*project.Task), args.Get(1).(int64), args.Error(2)
}

// MockDocumentRepository is a mock implementation of project.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, d *project.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, d *project.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Document, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.DocumentFilter) ([]*project.Document, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*project.Document), args.Get(1).(int64), args.Error(2)
}

// MockCommentRepository is a mock implementation of project.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *project.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, c *project.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.CommentFilter) ([]*project.Comment, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*project.Comment), args.Get(1).(int64), args.Error(2)
}

// MockTimelineRepository is a mock implementation of project.TimelineRepository
type MockTimelineRepository struct {
	mock.Mock
}

func (m *MockTimelineRepository) Append(ctx context.Context, e *project.TimelineEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockTimelineRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.TimelineEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.TimelineEvent), args.Error(1)
}

func (m *MockTimelineRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.TimelineFilter) ([]*project.TimelineEvent, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*project.TimelineEvent), args.Get(1).(int64), args.Error(2)
}

// MockNotificationRepository is a mock implementation of project.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *project.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *project.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.PageFilter) ([]*project.Notification, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*project.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
