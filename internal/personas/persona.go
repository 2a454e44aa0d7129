// Package personas implements the persona evaluator domain for Scout.
// It defines the fixed evaluator roster used by the review workflow,
// their baked-in instructions and response specifications, and the
// data access and HTTP surface for named instruction overrides.
package personas

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
)

// Persona identifies a review evaluator.
type Persona string

// Evaluator roster. Dispatch order is fixed: aggregation rationale,
// tradeoffs, and sources are assembled in this order regardless of
// evaluator completion order.
const (
	QuickFit   Persona = "quick_fit"
	BrandMatch Persona = "brand_match"
	Builder    Persona = "builder"
	Maximizer  Persona = "maximizer"
	Harmonizer Persona = "harmonizer"
	Pathfinder Persona = "pathfinder"
	Adventurer Persona = "adventurer"
)

var evaluators = []Persona{
	QuickFit,
	BrandMatch,
	Builder,
	Maximizer,
	Harmonizer,
	Pathfinder,
	Adventurer,
}

// Evaluators returns the full roster in dispatch order.
func Evaluators() []Persona {
	return evaluators
}

// UnmarshalJSON validates that the decoded string is a known persona.
func (p *Persona) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Persona(raw)
	if !slices.Contains(evaluators, v) {
		return ErrInvalidPersona
	}
	*p = v
	return nil
}

// ParsePersona validates a string as a known persona.
// Returns ErrInvalidPersona if the value is not recognized.
func ParsePersona(s string) (Persona, error) {
	v := Persona(s)
	if !slices.Contains(evaluators, v) {
		return "", ErrInvalidPersona
	}
	return v, nil
}

// Prompt represents a named instruction override for a persona.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Persona      Persona   `json:"persona"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
}

// CreateCommand carries the data needed to create a new persona prompt override.
type CreateCommand struct {
	Name         string  `json:"name"`
	Persona      Persona `json:"persona"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// UpdateCommand carries the data needed to update an existing persona prompt override.
type UpdateCommand struct {
	Name         string  `json:"name"`
	Persona      Persona `json:"persona"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}
