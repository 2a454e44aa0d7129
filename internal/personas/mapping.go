package personas

import (
	"net/url"
	"strconv"

	"github.com/seekpath/scout/pkg/query"
	"github.com/seekpath/scout/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "persona_prompts", "pp").
	Project("id", "ID").
	Project("name", "Name").
	Project("persona", "Persona").
	Project("instructions", "Instructions").
	Project("description", "Description").
	Project("active", "Active")

var defaultSort = query.SortField{
	Field: "name",
}

// Filters contains optional filtering criteria for persona prompt queries.
// Nil fields are ignored. Persona and Active use exact matching.
// Name uses case-insensitive contains matching.
type Filters struct {
	Persona *Persona `json:"persona,omitempty"`
	Name    *string  `json:"name,omitempty"`
	Active  *bool    `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Persona", f.Persona).
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("persona"); p != "" {
		persona := Persona(p)
		f.Persona = &persona
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Persona,
		&p.Instructions,
		&p.Description,
		&p.Active,
	)
	return p, err
}
