package main

import (
	"encoding/json"
	"net/http"

	"github.com/seekpath/scout/internal/api"
	"github.com/seekpath/scout/internal/config"
	"github.com/seekpath/scout/internal/infrastructure"
	"github.com/seekpath/scout/internal/scheduler"
	"github.com/seekpath/scout/internal/scrape"
	"github.com/seekpath/scout/pkg/middleware"
	"github.com/seekpath/scout/pkg/module"
	"github.com/seekpath/scout/web/scalar"
)

type Modules struct {
	API       *module.Module
	Scalar    *module.Module
	Scheduler *scheduler.Scheduler
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar")
	scalarModule.Use(middleware.Logger(infra.Logger))

	m := &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}

	if cfg.Scrape.Enabled() {
		client := scrape.New(cfg.Scrape.Endpoint, cfg.Scrape.TimeoutDuration(), infra.Logger)
		m.Scheduler = scheduler.New(
			client,
			domain.Jobs,
			domain.Reviews,
			searches(cfg),
			cfg.Scrape.Spec,
			infra.Logger,
		)
	} else {
		infra.Logger.Info("scrape sweep not configured, scheduler disabled")
	}

	return m, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func searches(cfg *config.Config) []scrape.Search {
	out := make([]scrape.Search, 0, len(cfg.Scrape.Searches))
	for _, s := range cfg.Scrape.Searches {
		out = append(out, scrape.Search{
			Site:     s.Site,
			Query:    s.Query,
			Location: s.Location,
		})
	}
	return out
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
