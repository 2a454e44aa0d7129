package workflow

import (
	"log/slog"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/internal/personas"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems. Weights and Guardrails are read from configuration
// once and held immutable for every run dispatched through this runtime.
type Runtime struct {
	Agent      gaconfig.AgentConfig
	Personas   personas.System
	Weights    decision.Weights
	Guardrails decision.Guardrails
	Logger     *slog.Logger
}
