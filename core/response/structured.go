// Package response defines the model reply types: the intermediate tool-loop
// turn and the final structured answer with its schema validation.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSchemaViolation reports a model reply that does not conform to the
// required structured shape. It is distinct from provider failures so callers
// can choose to retry or degrade.
var ErrSchemaViolation = errors.New("structured response violates schema")

// Structured is the agent's final answer. Confidence must lie in [0, 1] and
// Reasoning must carry at least one step; Validate enforces both.
type Structured struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
}

// Validate checks the required fields. All failures wrap ErrSchemaViolation.
func (s *Structured) Validate() error {
	if s.Answer == "" {
		return fmt.Errorf("%w: answer is empty", ErrSchemaViolation)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0, 1]", ErrSchemaViolation, s.Confidence)
	}
	if len(s.Reasoning) == 0 {
		return fmt.Errorf("%w: reasoning is empty", ErrSchemaViolation)
	}
	return nil
}

// ParseStructured decodes and validates a structured reply from raw JSON.
// Malformed JSON and missing or out-of-range fields both surface as
// ErrSchemaViolation rather than partially-parsed data.
func ParseStructured(body []byte) (*Structured, error) {
	var s Structured
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
