package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/projecthub/backend/internal/domain/project"
	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimelineService exposes read access to the activity ledger. Entries are
// only ever written as a side effect of other mutations; there is no write
// path here.
type TimelineService struct {
	timelineRepo project.TimelineRepository
	userRepo     identity.UserRepository
	logger       *zap.Logger
}

// NewTimelineService creates a new TimelineService
func NewTimelineService(
	timelineRepo project.TimelineRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *TimelineService {
	return &TimelineService{
		timelineRepo: timelineRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// List retrieves ledger entries for the caller's visible projects, newest
// first, optionally narrowed to one project.
func (s *TimelineService) List(ctx context.Context, userID uuid.UUID, filter project.TimelineFilter) ([]TimelineEventResponse, int64, error) {
	events, total, err := s.timelineRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list timeline events", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list timeline events")
	}

	resolver := newUserResolver(s.userRepo)
	responses := make([]TimelineEventResponse, len(events))
	for i, e := range events {
		responses[i] = toTimelineEventResponse(e, resolver.brief(ctx, e.ActorID))
	}

	return responses, total, nil
}
