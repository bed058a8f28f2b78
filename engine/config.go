package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kylemil/thoughtful-support/agent"
	"github.com/kylemil/thoughtful-support/knowledge"
)

const defaultMaxToolRounds = 4

// defaultSystemPrompt is the support-agent persona. The tool description
// carries the selection guidance; the prompt keeps the persona and tone.
const defaultSystemPrompt = "You are the customer support agent for Thoughtful AI, a company " +
	"building AI-powered healthcare automation agents (EVA, CAM, PHIL). " +
	"Answer questions about Thoughtful AI's products using the knowledge " +
	"base tool when relevant, and answer general questions helpfully from " +
	"your own knowledge."

// Config holds initialization parameters for the engine and its subsystems.
type Config struct {
	Agent         agent.Config     `json:"agent"`
	Knowledge     knowledge.Config `json:"knowledge"`
	Observer      string           `json:"observer,omitempty"`
	MaxToolRounds int              `json:"max_tool_rounds,omitempty"`
	SystemPrompt  string           `json:"system_prompt,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:         agent.DefaultConfig(),
		Knowledge:     knowledge.DefaultConfig(),
		Observer:      "slog",
		MaxToolRounds: defaultMaxToolRounds,
		SystemPrompt:  defaultSystemPrompt,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	c.Knowledge.Merge(&source.Knowledge)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.MaxToolRounds > 0 {
		c.MaxToolRounds = source.MaxToolRounds
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
}

// LoadConfig reads a JSON config file and merges it over the defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
