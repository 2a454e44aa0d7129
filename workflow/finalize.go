package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/seekpath/scout/internal/decision"
)

// KeyPersonaStage holds the persona stage result written by finalize:
// null when the pre-filter rejected, the verdict list otherwise.
const KeyPersonaStage = "persona_stage"

// FinalizeNode returns a state node that synthesizes the final
// recommendation. A pre-filter rejection short-circuits with high
// confidence and marks the persona stage as never run; otherwise the
// collected verdicts are aggregated under the configured weights.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		guardrail, err := extractGuardrail(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		var (
			outcome decision.Outcome
			stage   decision.StageResult[[]decision.PersonaVerdict]
		)

		if !guardrail.Recommend {
			outcome = decision.Outcome{Final: decision.ShortCircuit(guardrail)}
			stage = decision.NotRun[[]decision.PersonaVerdict]()
		} else {
			verdicts, err := extractVerdicts(s)
			if err != nil {
				return s, fmt.Errorf("finalize: %w", err)
			}

			outcome = decision.Aggregate(verdicts, rt.Weights, rt.Guardrails)
			stage = decision.Ran(verdicts)
		}

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"recommend", outcome.Final.Recommend,
			"confidence", outcome.Final.Confidence,
		)

		s = s.Set(KeyOutcome, outcome)
		s = s.Set(KeyPersonaStage, stage)
		return s, nil
	})
}

func extractVerdicts(s state.State) ([]decision.PersonaVerdict, error) {
	val, ok := s.Get(KeyVerdicts)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrFinalizeFailed, KeyVerdicts)
	}

	verdicts, ok := val.([]decision.PersonaVerdict)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []decision.PersonaVerdict", ErrFinalizeFailed, KeyVerdicts)
	}

	return verdicts, nil
}
