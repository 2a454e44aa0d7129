package api

import (
	"github.com/seekpath/scout/internal/config"
	"github.com/seekpath/scout/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the API module and returns
// it pre-serialized, so request handling is a byte copy.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"IngestRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"site":    {Type: "string", Description: "Scrape source identifier applied to every record"},
				"records": {Type: "array", Items: &openapi.Schema{Type: "object"}},
			},
			Required: []string{"site", "records"},
		},
		"IngestResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"site":    {Type: "string"},
				"jobs":    {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"summary": openapi.SchemaRef("IngestSummary"),
			},
		},
		"IngestSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"inserted":           {Type: "integer"},
				"skipped_duplicates": {Type: "integer"},
				"content_duplicates": {Type: "integer"},
				"errors":             {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"FitReview": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"job_id":     {Type: "string", Format: "uuid"},
				"recommend":  {Type: "boolean"},
				"confidence": {Type: "string", Description: "low, medium, or high"},
				"rationale":  {Type: "string"},
				"personas":   {Type: "array", Items: &openapi.Schema{Type: "object"}, Description: "null when the pre-filter rejected before evaluation"},
				"tradeoffs":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"actions":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"sources":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"PersonaPrompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"persona":      {Type: "string"},
				"instructions": {Type: "string"},
				"active":       {Type: "boolean"},
			},
		},
	})

	spec.Paths["/jobs/ingest"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Ingest a scrape batch",
			Tags:        []string{"jobs"},
			RequestBody: openapi.RequestBodyJSON("IngestRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Persistence summary with attempted rows", "IngestResult"),
				400: {Description: "Invalid request body"},
			},
		},
	}

	spec.Paths["/jobs"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List jobs",
			Tags:    []string{"jobs"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Page size", false),
				openapi.QueryParam("search", "string", "Search across title, company, description", false),
				openapi.QueryParam("site", "string", "Exact site match", false),
			},
			Responses: map[int]*openapi.Response{
				200: {Description: "Paginated job list"},
			},
		},
	}

	spec.Paths["/jobs/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a job",
			Tags:       []string{"jobs"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Job UUID")},
			Responses: map[int]*openapi.Response{
				200: {Description: "Job"},
				404: {Description: "Not found"},
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a job",
			Tags:       []string{"jobs"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Job UUID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: {Description: "Not found"},
			},
		},
	}

	spec.Paths["/reviews/{jobId}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Run the review pipeline for a job",
			Tags:       []string{"reviews"},
			Parameters: []*openapi.Parameter{openapi.PathParam("jobId", "Job UUID")},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored fit review", "FitReview"),
				404: {Description: "Job not found"},
			},
		},
	}

	spec.Paths["/reviews"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List reviews",
			Tags:    []string{"reviews"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Paginated review list"},
			},
		},
	}

	spec.Paths["/reviews/{id}/override"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Record a human override",
			Tags:       []string{"reviews"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Review UUID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Review with override recorded", "FitReview"),
				404: {Description: "Not found"},
			},
		},
	}

	spec.Paths["/personas"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List the persona roster in dispatch order",
			Tags:    []string{"personas"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Persona identifiers"},
			},
		},
	}

	spec.Paths["/personas/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List persona prompt overrides",
			Tags:    []string{"personas"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Paginated prompt list"},
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a persona prompt override",
			Tags:        []string{"personas"},
			RequestBody: openapi.RequestBodyJSON("PersonaPrompt", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created prompt", "PersonaPrompt"),
			},
		},
	}

	return openapi.MarshalJSON(spec)
}
