package project

import (
	"context"

	"github.com/projecthub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// userResolver caches username lookups for the duration of one request so
// list responses do not refetch the same user per row.
type userResolver struct {
	userRepo identity.UserRepository
	cache    map[uuid.UUID]UserBrief
}

func newUserResolver(userRepo identity.UserRepository) *userResolver {
	return &userResolver{
		userRepo: userRepo,
		cache:    make(map[uuid.UUID]UserBrief),
	}
}

// brief returns the display block for a user. Lookups are best effort: a
// missing user (deleted after the row was written) yields a block with only
// the id set.
func (r *userResolver) brief(ctx context.Context, id uuid.UUID) UserBrief {
	if b, ok := r.cache[id]; ok {
		return b
	}

	b := UserBrief{ID: id}
	if user, err := r.userRepo.FindByID(ctx, id); err == nil {
		b = toUserBrief(user)
	}
	r.cache[id] = b
	return b
}

func (r *userResolver) briefPtr(ctx context.Context, id *uuid.UUID) *UserBrief {
	if id == nil {
		return nil
	}
	b := r.brief(ctx, *id)
	return &b
}
