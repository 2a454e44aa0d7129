package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/seekpath/scout/pkg/pagination"
)

// System defines the public contract for job domain operations.
type System interface {
	Handler(maxIngestSize int64) *Handler

	Ingest(ctx context.Context, cmd IngestCommand) (*IngestResult, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Job], error)

	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	FindByKey(ctx context.Context, site, jobURL string) (*Job, error)
	Unreviewed(ctx context.Context, limit int) ([]Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
