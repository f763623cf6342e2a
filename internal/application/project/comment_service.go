package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentService handles comment business operations. Lists scope by the
// effective project's visibility; detail, update, and delete are restricted
// to the comment's author and report not-found otherwise.
type CommentService struct {
	commentRepo project.CommentRepository
	taskRepo    project.TaskRepository
	projectRepo project.ProjectRepository
	userRepo    identity.UserRepository
	uow         UnitOfWork
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo project.CommentRepository,
	taskRepo project.TaskRepository,
	projectRepo project.ProjectRepository,
	userRepo identity.UserRepository,
	uow UnitOfWork,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		uow:         uow,
		logger:      logger,
	}
}

// Create adds a comment to a visible task and appends the comment_added
// ledger entry against the comment's effective project in the same
// transaction.
func (s *CommentService) Create(ctx context.Context, userID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	t, err := s.taskRepo.FindByIDForUser(ctx, userID, req.TaskID)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByIDForUser(ctx, userID, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	c, err := project.NewComment(t.ID, req.ProjectID, userID, req.Content)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		if err := repos.Comments.Create(ctx, c); err != nil {
			return err
		}
		return repos.Timeline.Append(ctx,
			project.NewCommentAddedEntry(c.EffectiveProjectID(t.ProjectID), author.Username, userID))
	})
	if err != nil {
		s.logger.Error("Failed to create comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create comment")
	}

	s.logger.Info("Comment created",
		zap.String("comment_id", c.ID.String()),
		zap.String("task_id", t.ID.String()))

	response := toCommentResponse(c, toUserBrief(author))
	return &response, nil
}

// GetByID retrieves a comment. Only the author sees the detail view; anyone
// else gets not-found.
func (s *CommentService) GetByID(ctx context.Context, userID, id uuid.UUID) (*CommentResponse, error) {
	c, err := s.authoredComment(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	resolver := newUserResolver(s.userRepo)
	response := toCommentResponse(c, resolver.brief(ctx, c.AuthorID))
	return &response, nil
}

// List retrieves comments whose effective project is visible to the caller,
// newest first, optionally narrowed to one project or one task.
func (s *CommentService) List(ctx context.Context, userID uuid.UUID, filter project.CommentFilter) ([]CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list comments", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list comments")
	}

	resolver := newUserResolver(s.userRepo)
	responses := make([]CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = toCommentResponse(c, resolver.brief(ctx, c.AuthorID))
	}

	return responses, total, nil
}

// Update replaces the body of the caller's own comment
func (s *CommentService) Update(ctx context.Context, userID, id uuid.UUID, content string) (*CommentResponse, error) {
	c, err := s.authoredComment(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := c.SetContent(content); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update comment")
	}

	s.logger.Info("Comment updated", zap.String("comment_id", id.String()))

	resolver := newUserResolver(s.userRepo)
	response := toCommentResponse(c, resolver.brief(ctx, c.AuthorID))
	return &response, nil
}

// Delete removes the caller's own comment
func (s *CommentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	c, err := s.authoredComment(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, c.ID); err != nil {
		s.logger.Error("Failed to delete comment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete comment")
	}

	s.logger.Info("Comment deleted", zap.String("comment_id", id.String()))

	return nil
}

// authoredComment fetches a comment and hides it from everyone except its
// author. A non-author gets the same not-found as a missing id so comment
// existence is not leaked.
func (s *CommentService) authoredComment(ctx context.Context, userID, id uuid.UUID) (*project.Comment, error) {
	c, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsAuthoredBy(userID) {
		return nil, shared.ErrNotFound
	}
	return c, nil
}
