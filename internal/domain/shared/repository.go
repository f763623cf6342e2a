package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract shared by every aggregate.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// ScopedRepository restricts reads to what one user may see. For the
// project context that means projects the user owns or is a member of,
// and everything hanging off them.
type ScopedRepository[T any] interface {
	Repository[T]
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*T, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter Filter) ([]T, error)
}

// Filter carries pagination, ordering, and the per-repository filter map
// from the HTTP layer down to persistence.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter is page 1, twenty rows, newest first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated is a page of results plus the counts list endpoints return.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
