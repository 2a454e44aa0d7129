package workflow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/internal/personas"
	"github.com/seekpath/scout/pkg/formatting"
)

type verdictResponse struct {
	Recommend bool     `json:"recommend"`
	Reason    string   `json:"reason"`
	Notes     []string `json:"notes"`
	Sources   []string `json:"sources"`
}

// EvaluateNode returns a state node that fans the job intake out to every
// persona evaluator using bounded errgroup concurrency. Each goroutine
// creates its own agent, composes its persona prompt, and parses the JSON
// verdict. A failed evaluator is logged and excluded; it never aborts the
// run. Results are indexed by dispatch position so verdict order stays
// deterministic regardless of completion order.
func EvaluateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		intake, err := extractIntake(s)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w", err)
		}

		verdicts := evaluatePersonas(ctx, rt, intake)

		rt.Logger.InfoContext(
			ctx, "evaluate node complete",
			"dispatched", len(personas.Evaluators()),
			"verdicts", len(verdicts),
		)

		s = s.Set(KeyVerdicts, verdicts)
		return s, nil
	})
}

func evaluatePersonas(ctx context.Context, rt *Runtime, intake decision.Intake) []decision.PersonaVerdict {
	roster := personas.Evaluators()
	slots := make([]*decision.PersonaVerdict, len(roster))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(roster)))

	for i, persona := range roster {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			verdict, err := evaluateOne(gctx, rt, persona, intake)
			if err != nil {
				rt.Logger.WarnContext(
					gctx, "persona evaluation failed",
					"persona", persona,
					"error", err,
				)
				return nil
			}

			slots[i] = verdict
			return nil
		})
	}

	// Wait only fails on context cancellation; evaluator errors are
	// swallowed above so partial results survive.
	if err := g.Wait(); err != nil {
		rt.Logger.WarnContext(ctx, "evaluation interrupted", "error", err)
	}

	verdicts := make([]decision.PersonaVerdict, 0, len(roster))
	for _, slot := range slots {
		if slot != nil {
			verdicts = append(verdicts, *slot)
		}
	}

	return verdicts
}

func evaluateOne(
	ctx context.Context,
	rt *Runtime,
	persona personas.Persona,
	intake decision.Intake,
) (*decision.PersonaVerdict, error) {
	prompt, err := ComposePrompt(ctx, rt.Personas, persona, intake)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluateFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrEvaluateFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrEvaluateFailed, err)
	}

	parsed, err := formatting.Parse[verdictResponse](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrEvaluateFailed, err)
	}

	return &decision.PersonaVerdict{
		ID:        string(persona),
		Recommend: parsed.Recommend,
		Reason:    parsed.Reason,
		Notes:     parsed.Notes,
		Sources:   parsed.Sources,
	}, nil
}
