package toolregistry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/trialgate/trialgate/apiframework"
)

// GetSchemas renders the tool catalog as an OpenAPI document: one POST
// operation per tool, with the tool's parameter schema as the request body.
// Agent frontends that speak OpenAPI instead of function-calling JSON can
// consume this directly.
func (r *Registry) GetSchemas(ctx context.Context) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "trialgate tools",
			Description: "Named callable operations over the trial management platform.",
			Version:     apiframework.GetVersion(),
		},
		Paths: openapi3.NewPaths(),
	}

	tools, err := r.GetTools(ctx)
	if err != nil {
		return nil, err
	}

	for _, tool := range tools {
		schemaRef, err := parameterSchemaRef(tool.Function.Parameters)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Function.Name, err)
		}

		op := &openapi3.Operation{
			OperationID: tool.Function.Name,
			Summary:     tool.Function.Description,
			Tags:        []string{"tools"},
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Description: "Tool arguments",
					Required:    true,
					Content:     openapi3.NewContentWithSchemaRef(schemaRef, []string{"application/json"}),
				},
			},
			Responses: openapi3.NewResponses(),
		}

		descr200 := "Tool result. Fetch failures are reported in-band as an object with an error field."
		op.Responses.Set("200", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &descr200,
				Content: openapi3.NewContentWithSchemaRef(
					&openapi3.SchemaRef{Value: openapi3.NewSchema()},
					[]string{"application/json"},
				),
			},
		})

		doc.Paths.Set("/tools/"+tool.Function.Name, &openapi3.PathItem{Post: op})
	}

	return doc, nil
}

// parameterSchemaRef converts a tool's JSON-schema parameter map into a
// typed schema reference.
func parameterSchemaRef(parameters map[string]any) (*openapi3.SchemaRef, error) {
	raw, err := json.Marshal(parameters)
	if err != nil {
		return nil, err
	}
	var schema openapi3.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	return &openapi3.SchemaRef{Value: &schema}, nil
}
