package api

import (
	"net/http"

	"github.com/seekpath/scout/internal/config"
	"github.com/seekpath/scout/pkg/openapi"
	"github.com/seekpath/scout/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	routes.Register(
		mux,
		domain.Jobs.Handler(cfg.API.MaxIngestSizeBytes()).Routes(),
		domain.Personas.Handler().Routes(),
		domain.Reviews.Handler().Routes(),
	)

	specBytes, err := buildSpec(cfg)
	if err != nil {
		return err
	}

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	return nil
}
