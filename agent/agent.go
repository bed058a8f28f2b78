// Package agent provides clients for the external generation provider.
// The Client interface covers the two calls the engine makes: a tool-calling
// turn and a schema-constrained final turn. The real implementation talks to
// the Gemini API; the stub answers deterministically for offline work.
package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/kylemil/thoughtful-support/core/protocol"
	"github.com/kylemil/thoughtful-support/core/response"
)

// EnvAPIKey is the environment variable holding the provider credential.
// Its absence is a startup error for the gemini provider, never a
// per-request one.
const EnvAPIKey = "GEMINI_API_KEY"

// Client is a text-generation provider.
type Client interface {
	// Generate runs one conversational turn with the given tool
	// definitions available. The provider decides whether to call tools.
	Generate(ctx context.Context, messages []protocol.Message, tools []protocol.Tool) (*response.ModelTurn, error)

	// Structured produces the final schema-constrained reply for the
	// conversation. Malformed replies surface as response.ErrSchemaViolation.
	Structured(ctx context.Context, messages []protocol.Message) (*response.Structured, error)
}

// New creates a Client from configuration.
func New(ctx context.Context, cfg *Config) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini:
		key := os.Getenv(EnvAPIKey)
		if key == "" {
			return nil, fmt.Errorf("%s is not set", EnvAPIKey)
		}
		return NewGemini(ctx, cfg, key)
	case ProviderStub:
		return NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
}
