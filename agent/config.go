package agent

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
	ProviderStub   = "stub"
)

const (
	defaultModel           = "gemini-2.5-flash-lite"
	defaultTemperature     = 0.7
	defaultMaxOutputTokens = 1024
)

// Config holds provider client initialization parameters.
type Config struct {
	Provider        string  `json:"provider,omitempty"`
	Model           string  `json:"model,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
}

// DefaultConfig returns the production defaults: the Gemini provider with
// the same model parameters the support agent has always used.
func DefaultConfig() Config {
	return Config{
		Provider:        ProviderGemini,
		Model:           defaultModel,
		Temperature:     defaultTemperature,
		MaxOutputTokens: defaultMaxOutputTokens,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Provider != "" {
		c.Provider = source.Provider
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}
	if source.MaxOutputTokens > 0 {
		c.MaxOutputTokens = source.MaxOutputTokens
	}
}
