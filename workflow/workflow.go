package workflow

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/seekpath/scout/internal/decision"
)

// Execute runs the review pipeline for a single job. It builds the state
// graph (prefilter → evaluate? → finalize), seeds the initial state with
// the job identity and intake, executes it, and extracts the Result from
// the final state.
func Execute(
	ctx context.Context,
	rt *Runtime,
	jobID uuid.UUID,
	intake decision.Intake,
) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyJobID, jobID)
	initialState = initialState.Set(KeyIntake, intake)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("scout-review")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("prefilter", PreFilterNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("evaluate", EvaluateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// prefilter → evaluate (when the guardrails pass)
	if err := graph.AddEdge("prefilter", "evaluate", passedPreFilter); err != nil {
		return nil, err
	}

	// prefilter → finalize (short-circuit on rejection)
	if err := graph.AddEdge("prefilter", "finalize", state.Not(passedPreFilter)); err != nil {
		return nil, err
	}

	// evaluate → finalize (unconditional)
	if err := graph.AddEdge("evaluate", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("prefilter"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	jobIDVal, ok := s.Get(KeyJobID)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyJobID)
	}

	jobID, ok := jobIDVal.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("%s is not uuid.UUID", KeyJobID)
	}

	intake, err := extractIntake(s)
	if err != nil {
		return nil, err
	}

	guardrail, err := extractGuardrail(s)
	if err != nil {
		return nil, err
	}

	outcomeVal, ok := s.Get(KeyOutcome)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyOutcome)
	}

	outcome, ok := outcomeVal.(decision.Outcome)
	if !ok {
		return nil, fmt.Errorf("%s is not decision.Outcome", KeyOutcome)
	}

	stageVal, ok := s.Get(KeyPersonaStage)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyPersonaStage)
	}

	stage, ok := stageVal.(decision.StageResult[[]decision.PersonaVerdict])
	if !ok {
		return nil, fmt.Errorf("%s is not a persona stage result", KeyPersonaStage)
	}

	return &Result{
		JobID:       jobID,
		Intake:      intake,
		Guardrail:   guardrail,
		Personas:    stage,
		Final:       outcome.Final,
		Tradeoffs:   outcome.Tradeoffs,
		Actions:     outcome.Actions,
		Sources:     outcome.Sources,
		CompletedAt: time.Now().UTC(),
	}, nil
}

func passedPreFilter(s state.State) bool {
	verdict, err := extractGuardrail(s)
	if err != nil {
		return false
	}
	return verdict.Recommend
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
