package personas

import (
	"context"

	"github.com/google/uuid"

	"github.com/seekpath/scout/pkg/pagination"
)

// System defines the public contract for persona domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)

	// Instructions returns the active DB override for the persona when one
	// exists, otherwise the hardcoded default.
	Instructions(ctx context.Context, persona Persona) (string, error)
	Spec(persona Persona) (string, error)
}
