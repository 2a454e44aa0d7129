package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/seekpath/scout/pkg/pagination"
)

// System defines the public contract for review domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[FitReview], error)

	Find(ctx context.Context, id uuid.UUID) (*FitReview, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) (*FitReview, error)
	Review(ctx context.Context, jobID uuid.UUID) (*FitReview, error)
	Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*FitReview, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
