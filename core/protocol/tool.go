package protocol

// Tool describes a function the model may call. Parameters uses JSON Schema
// format (type/properties/required) to describe the argument object.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}
