package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService handles task business operations
type TaskService struct {
	taskRepo    project.TaskRepository
	projectRepo project.ProjectRepository
	userRepo    identity.UserRepository
	uow         UnitOfWork
	logger      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo project.TaskRepository,
	projectRepo project.ProjectRepository,
	userRepo identity.UserRepository,
	uow UnitOfWork,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		uow:         uow,
		logger:      logger,
	}
}

// Create creates a task in a visible project and appends the task_created
// ledger entry in the same transaction. An assignee set at creation time is
// stored but does not notify; notification is reserved for the explicit
// assign operation.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	t, err := project.NewTask(p.ID, userID, req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := t.SetStatus(project.TaskStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := t.SetPriority(project.TaskPriority(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		t.SetDueDate(req.DueDate)
	}
	if req.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(ctx, *req.AssigneeID); err != nil {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "Assignee not found")
		}
		t.AssignTo(*req.AssigneeID)
	}

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		if err := repos.Tasks.Create(ctx, t); err != nil {
			return err
		}
		return repos.Timeline.Append(ctx, project.NewTaskCreatedEntry(t, p.Name, userID))
	})
	if err != nil {
		s.logger.Error("Failed to create task", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create task")
	}

	s.logger.Info("Task created",
		zap.String("task_id", t.ID.String()),
		zap.String("project_id", p.ID.String()))

	return s.toResponse(ctx, newUserResolver(s.userRepo), t, p.Name), nil
}

// GetByID retrieves a visible task
func (s *TaskService) GetByID(ctx context.Context, userID, id uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, newUserResolver(s.userRepo), t, s.projectName(ctx, t.ProjectID)), nil
}

// List retrieves the caller's visible tasks, newest first. A project filter
// outside the caller's scope yields an empty set, not an error.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, filter project.TaskFilter) ([]TaskResponse, int64, error) {
	tasks, total, err := s.taskRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tasks")
	}

	resolver := newUserResolver(s.userRepo)
	names := make(map[uuid.UUID]string)
	responses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		name, ok := names[t.ProjectID]
		if !ok {
			name = s.projectName(ctx, t.ProjectID)
			names[t.ProjectID] = name
		}
		responses[i] = *s.toResponse(ctx, resolver, t, name)
	}

	return responses, total, nil
}

// Update updates a visible task. No ledger entry is appended for updates,
// including assignee changes made this way.
func (s *TaskService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := t.Retitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		t.SetDescription(*req.Description)
	}
	if req.Status != nil {
		if err := t.SetStatus(project.TaskStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := t.SetPriority(project.TaskPriority(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.ClearDueDate {
		t.SetDueDate(nil)
	} else if req.DueDate != nil {
		t.SetDueDate(req.DueDate)
	}
	if req.ClearAssignee {
		t.Unassign()
	} else if req.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(ctx, *req.AssigneeID); err != nil {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "Assignee not found")
		}
		t.AssignTo(*req.AssigneeID)
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		s.logger.Error("Failed to update task", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update task")
	}

	s.logger.Info("Task updated", zap.String("task_id", id.String()))

	return s.toResponse(ctx, newUserResolver(s.userRepo), t, s.projectName(ctx, t.ProjectID)), nil
}

// Assign assigns a task to a user. Check order is fixed: task existence,
// then the caller's permission on the project, then the target user. It
// appends the task_assigned ledger entry and creates the assignee's
// notification in the same transaction as the task write. Re-assigning the
// same user again repeats both side effects.
func (s *TaskService) Assign(ctx context.Context, userID, taskID, targetUserID uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	p, err := s.projectRepo.FindByID(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if !p.IsVisibleTo(userID) {
		return nil, shared.NewDomainError("FORBIDDEN", "Only project members can assign tasks")
	}

	assignee, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Assignee not found")
	}

	t.AssignTo(assignee.ID)

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		if err := repos.Tasks.Update(ctx, t); err != nil {
			return err
		}
		if err := repos.Timeline.Append(ctx, project.NewTaskAssignedEntry(t, assignee.Username, userID)); err != nil {
			return err
		}
		return repos.Notifications.Create(ctx, project.NewTaskAssignedNotification(assignee.ID, t.Title, p.Name))
	})
	if err != nil {
		s.logger.Error("Failed to assign task", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to assign task")
	}

	s.logger.Info("Task assigned",
		zap.String("task_id", t.ID.String()),
		zap.String("assignee_id", assignee.ID.String()),
		zap.String("assigned_by", userID.String()))

	return s.toResponse(ctx, newUserResolver(s.userRepo), t, p.Name), nil
}

// Delete removes a visible task and its comments
func (s *TaskService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	t, err := s.taskRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, t.ID); err != nil {
		s.logger.Error("Failed to delete task", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete task")
	}

	s.logger.Info("Task deleted", zap.String("task_id", id.String()))

	return nil
}

func (s *TaskService) projectName(ctx context.Context, projectID uuid.UUID) string {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return ""
	}
	return p.Name
}

func (s *TaskService) toResponse(ctx context.Context, resolver *userResolver, t *project.Task, projectName string) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		ProjectName: projectName,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Assignee:    resolver.briefPtr(ctx, t.AssigneeID),
		DueDate:     t.DueDate,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
