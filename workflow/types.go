// Package workflow orchestrates the job review pipeline as a state graph:
// a deterministic pre-filter, parallel persona evaluation, and a
// deterministic finalize step that synthesizes the final recommendation.
package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/seekpath/scout/internal/decision"
)

// State bag keys shared across workflow nodes.
const (
	KeyJobID     = "job_id"
	KeyIntake    = "intake"
	KeyGuardrail = "guardrail"
	KeyVerdicts  = "verdicts"
	KeyOutcome   = "outcome"
)

// Result is the complete output of one review run. Personas is null when
// the pre-filter rejected the posting and evaluation never ran; it is an
// empty list when evaluation ran and every evaluator failed.
type Result struct {
	JobID       uuid.UUID                                    `json:"job_id"`
	Intake      decision.Intake                              `json:"intake"`
	Guardrail   decision.GuardrailVerdict                    `json:"guardrail"`
	Personas    decision.StageResult[[]decision.PersonaVerdict] `json:"personas"`
	Final       decision.FinalRecommendation                 `json:"final"`
	Tradeoffs   []string                                     `json:"tradeoffs,omitempty"`
	Actions     []string                                     `json:"actions,omitempty"`
	Sources     []string                                     `json:"sources,omitempty"`
	CompletedAt time.Time                                    `json:"completed_at"`
}
