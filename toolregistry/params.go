package toolregistry

import "github.com/trialgate/trialgate/apiframework"

// property is one named entry in a tool's JSON-schema parameter object.
type property struct {
	name     string
	schema   map[string]any
	required bool
}

func makeTool(name, description string, parameters map[string]any) Tool {
	return Tool{
		Type: "function",
		Function: FunctionTool{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

func params(props ...property) map[string]any {
	properties := make(map[string]any, len(props))
	required := []string{}
	for _, p := range props {
		properties[p.name] = p.schema
		if p.required {
			required = append(required, p.name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func strParam(name, description string, required bool) property {
	return property{
		name:     name,
		required: required,
		schema: map[string]any{
			"type":        "string",
			"description": description,
		},
	}
}

func strParamDefault(name, description, def string) property {
	return property{
		name: name,
		schema: map[string]any{
			"type":        "string",
			"description": description,
			"default":     def,
		},
	}
}

func intParamDefault(name, description string, def int) property {
	return property{
		name: name,
		schema: map[string]any{
			"type":        "integer",
			"description": description,
			"default":     def,
		},
	}
}

func boolParamDefault(name, description string, def bool) property {
	return property{
		name: name,
		schema: map[string]any{
			"type":        "boolean",
			"description": description,
			"default":     def,
		},
	}
}

func arrParam(name, description string, required bool) property {
	return property{
		name:     name,
		required: required,
		schema: map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": description,
		},
	}
}

func objParam(name, description string) property {
	return property{
		name: name,
		schema: map[string]any{
			"type":        "object",
			"description": description,
		},
	}
}

func objParamRequired(name, description string) property {
	p := objParam(name, description)
	p.required = true
	return p
}

// bearerParam is the per-call credential override every tool accepts.
func bearerParam() property {
	return property{
		name: "bearer_token",
		schema: map[string]any{
			"type":        "string",
			"description": "Bearer token overriding the default platform credential for this call",
		},
	}
}

func missingArg(name string) error {
	return apiframework.MissingParameter(name, "argument is required")
}
