package api

import (
	"github.com/seekpath/scout/internal/jobs"
	"github.com/seekpath/scout/internal/personas"
	"github.com/seekpath/scout/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Jobs     jobs.System
	Personas personas.System
	Reviews  reviews.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	jobsSystem := jobs.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	personasSystem := personas.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	reviewsSystem := reviews.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		jobsSystem,
		personasSystem,
		runtime.Review.DecisionWeights(),
		runtime.Review.DecisionGuardrails(),
	)

	return &Domain{
		Jobs:     jobsSystem,
		Personas: personasSystem,
		Reviews:  reviewsSystem,
	}
}
