package agent

import "google.golang.org/genai"

// toSchema converts a JSON Schema parameter map (the registry's tool
// definition format) into the genai schema type. Only the subset the tools
// actually use is covered: type, description, properties, required, items,
// and enum.
func toSchema(params map[string]any) *genai.Schema {
	if params == nil {
		return nil
	}

	s := &genai.Schema{}

	if t, ok := params["type"].(string); ok {
		s.Type = schemaType(t)
	}
	if d, ok := params["description"].(string); ok {
		s.Description = d
	}

	if props, ok := params["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				s.Properties[name] = toSchema(sub)
			}
		}
	}

	switch req := params["required"].(type) {
	case []string:
		s.Required = req
	case []any:
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}

	if items, ok := params["items"].(map[string]any); ok {
		s.Items = toSchema(items)
	}

	switch enum := params["enum"].(type) {
	case []string:
		s.Enum = enum
	case []any:
		for _, e := range enum {
			if v, ok := e.(string); ok {
				s.Enum = append(s.Enum, v)
			}
		}
	}

	return s
}

func schemaType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeUnspecified
	}
}
