// Package project implements the application services of the
// project-management context: projects and members, tasks, documents,
// comments, the activity timeline, and notifications.
package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectService handles project business operations. All reads and writes
// are scoped to the calling user: an id outside the caller's visible set
// behaves as if it did not exist.
type ProjectService struct {
	projectRepo project.ProjectRepository
	userRepo    identity.UserRepository
	uow         UnitOfWork
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo project.ProjectRepository,
	userRepo identity.UserRepository,
	uow UnitOfWork,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		uow:         uow,
		logger:      logger,
	}
}

// Create creates a new project owned by the caller and appends the
// project_created ledger entry in the same transaction.
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := project.NewProject(userID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		if err := p.SetDates(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}

	for _, memberID := range req.MemberIDs {
		if _, err := s.userRepo.FindByID(ctx, memberID); err != nil {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "Member not found: "+memberID.String())
		}
		p.AddMember(memberID)
	}

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		if err := repos.Projects.Create(ctx, p); err != nil {
			return err
		}
		if len(p.MemberIDs) > 0 {
			if err := repos.Projects.SaveMembers(ctx, p); err != nil {
				return err
			}
		}
		return repos.Timeline.Append(ctx, project.NewProjectCreatedEntry(p, userID))
	})
	if err != nil {
		s.logger.Error("Failed to create project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create project")
	}

	s.logger.Info("Project created",
		zap.String("project_id", p.ID.String()),
		zap.String("owner_id", userID.String()))

	return s.toResponse(ctx, p, project.ProjectStats{MemberCount: int64(len(p.MemberIDs))}), nil
}

// GetByID retrieves a visible project with its display counts
func (s *ProjectService) GetByID(ctx context.Context, userID, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.projectRepo.Stats(ctx, p.ID)
	if err != nil {
		s.logger.Error("Failed to load project stats", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load project")
	}

	return s.toResponse(ctx, p, stats), nil
}

// List retrieves the caller's visible projects, newest first
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID, filter project.PageFilter) ([]ProjectResponse, int64, error) {
	projects, total, err := s.projectRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list projects")
	}

	resolver := newUserResolver(s.userRepo)
	responses := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		stats, err := s.projectRepo.Stats(ctx, p.ID)
		if err != nil {
			s.logger.Error("Failed to load project stats",
				zap.String("project_id", p.ID.String()), zap.Error(err))
		}
		responses[i] = *s.toResponseWith(ctx, resolver, p, stats)
	}

	return responses, total, nil
}

// Update updates a visible project. Ledger silence on update is
// intentional: only the five trigger mutations append events.
func (s *ProjectService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := p.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		p.SetDescription(*req.Description)
	}
	if req.Status != nil {
		if err := p.SetStatus(project.ProjectStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.ClearDates {
		if err := p.SetDates(nil, nil); err != nil {
			return nil, err
		}
	} else if req.StartDate != nil || req.EndDate != nil {
		start, end := p.StartDate, p.EndDate
		if req.StartDate != nil {
			start = req.StartDate
		}
		if req.EndDate != nil {
			end = req.EndDate
		}
		if err := p.SetDates(start, end); err != nil {
			return nil, err
		}
	}

	membersChanged := false
	if req.MemberIDs != nil {
		for _, memberID := range *req.MemberIDs {
			if memberID == p.CreatedBy {
				continue
			}
			if _, err := s.userRepo.FindByID(ctx, memberID); err != nil {
				return nil, shared.NewDomainError("USER_NOT_FOUND", "Member not found: "+memberID.String())
			}
		}
		members := make([]uuid.UUID, 0, len(*req.MemberIDs))
		for _, memberID := range *req.MemberIDs {
			if memberID != p.CreatedBy {
				members = append(members, memberID)
			}
		}
		p.MemberIDs = members
		membersChanged = true
	}

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		if err := repos.Projects.Update(ctx, p); err != nil {
			return err
		}
		if membersChanged {
			return repos.Projects.SaveMembers(ctx, p)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
	}

	stats, err := s.projectRepo.Stats(ctx, p.ID)
	if err != nil {
		s.logger.Error("Failed to load project stats", zap.Error(err))
	}

	s.logger.Info("Project updated", zap.String("project_id", id.String()))

	return s.toResponse(ctx, p, stats), nil
}

// Delete removes a visible project and everything under it: tasks,
// documents, comments, timeline events, and memberships.
func (s *ProjectService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, p.ID); err != nil {
		s.logger.Error("Failed to delete project", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete project")
	}

	s.logger.Info("Project deleted",
		zap.String("project_id", id.String()),
		zap.String("deleted_by", userID.String()))

	return nil
}

func (s *ProjectService) toResponse(ctx context.Context, p *project.Project, stats project.ProjectStats) *ProjectResponse {
	return s.toResponseWith(ctx, newUserResolver(s.userRepo), p, stats)
}

func (s *ProjectService) toResponseWith(ctx context.Context, resolver *userResolver, p *project.Project, stats project.ProjectStats) *ProjectResponse {
	members := make([]UserBrief, len(p.MemberIDs))
	for i, memberID := range p.MemberIDs {
		members[i] = resolver.brief(ctx, memberID)
	}

	return &ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        string(p.Status),
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Owner:         resolver.brief(ctx, p.CreatedBy),
		Members:       members,
		MemberCount:   stats.MemberCount,
		TaskCount:     stats.TaskCount,
		DocumentCount: stats.DocumentCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
