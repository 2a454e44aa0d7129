package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/internal/personas"
)

// ComposePrompt builds a persona's system prompt by combining its tunable
// instructions, the immutable verdict specification, and the job posting
// under review.
func ComposePrompt(
	ctx context.Context,
	ps personas.System,
	persona personas.Persona,
	intake decision.Intake,
) (string, error) {
	instructions, err := ps.Instructions(ctx, persona)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", persona, err)
	}

	spec, err := ps.Spec(persona)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", persona, err)
	}

	posting, err := json.MarshalIndent(intake, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize job intake: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nJob posting under review:\n\n")
	sb.Write(posting)

	return sb.String(), nil
}
