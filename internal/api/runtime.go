package api

import (
	"github.com/seekpath/scout/internal/config"
	"github.com/seekpath/scout/internal/infrastructure"
	"github.com/seekpath/scout/pkg/pagination"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Pagination pagination.Config
	Review     config.ReviewConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      cfg.Agent,
		Pagination: cfg.API.Pagination,
		Review:     cfg.Review,
	}
}
