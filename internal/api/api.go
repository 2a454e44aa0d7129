// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/seekpath/scout/internal/config"
	"github.com/seekpath/scout/internal/infrastructure"
	"github.com/seekpath/scout/pkg/middleware"
	"github.com/seekpath/scout/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The assembled Domain is returned so composition code can share the same
// systems with background workers.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, domain, nil
}
