package tools

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// ToolDefinition is the machine-readable surface advertised to the model.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
}

// Citation records where a piece of retrieved content came from, surfaced to
// the end user alongside the answer.
type Citation struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// Tool is what the registry dispatches to. Execute returns its citations
// directly rather than holding them as instance state, so one registry can
// serve concurrent queries without cross-query citation leakage.
type Tool interface {
	Definition() ToolDefinition
	Execute(ctx context.Context, input json.RawMessage) (string, []Citation, error)
}

// GenerateSchema derives a tool input schema from a struct type's json and
// jsonschema_description tags.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}
