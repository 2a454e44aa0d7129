package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/seekpath/scout/internal/decision"
)

// PreFilterNode returns a state node that applies the hard guardrail rules
// to the job intake. The verdict is stored in the state bag; a rejection
// routes the graph directly to finalize without running any evaluator.
func PreFilterNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		intake, err := extractIntake(s)
		if err != nil {
			return s, fmt.Errorf("prefilter: %w", err)
		}

		verdict := decision.PreFilter(intake, rt.Guardrails)

		rt.Logger.InfoContext(
			ctx, "prefilter node complete",
			"passed", verdict.Recommend,
			"reason", verdict.Reason,
		)

		s = s.Set(KeyGuardrail, verdict)
		return s, nil
	})
}

func extractIntake(s state.State) (decision.Intake, error) {
	val, ok := s.Get(KeyIntake)
	if !ok {
		return decision.Intake{}, fmt.Errorf("%w: missing %s in state", ErrPreFilterFailed, KeyIntake)
	}

	intake, ok := val.(decision.Intake)
	if !ok {
		return decision.Intake{}, fmt.Errorf("%w: %s is not decision.Intake", ErrPreFilterFailed, KeyIntake)
	}

	return intake, nil
}

func extractGuardrail(s state.State) (decision.GuardrailVerdict, error) {
	val, ok := s.Get(KeyGuardrail)
	if !ok {
		return decision.GuardrailVerdict{}, fmt.Errorf("%w: missing %s in state", ErrFinalizeFailed, KeyGuardrail)
	}

	verdict, ok := val.(decision.GuardrailVerdict)
	if !ok {
		return decision.GuardrailVerdict{}, fmt.Errorf("%w: %s is not decision.GuardrailVerdict", ErrFinalizeFailed, KeyGuardrail)
	}

	return verdict, nil
}
