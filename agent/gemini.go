package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/kylemil/thoughtful-support/core/protocol"
	"github.com/kylemil/thoughtful-support/core/response"
)

// Gemini implements Client on top of the Gemini API.
type Gemini struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

// NewGemini creates a Gemini client with the given credential.
func NewGemini(ctx context.Context, cfg *Config, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client:          client,
		model:           cfg.Model,
		temperature:     float32(cfg.Temperature),
		maxOutputTokens: int32(cfg.MaxOutputTokens),
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, messages []protocol.Message, tools []protocol.Tool) (*response.ModelTurn, error) {
	contents, system := toContents(messages)

	cfg := g.baseConfig(system)
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, t := range tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toSchema(t.Parameters),
			})
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(res.Candidates) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	turn := &response.ModelTurn{Content: res.Text()}
	for _, fc := range res.FunctionCalls() {
		args, err := json.Marshal(fc.Args)
		if err != nil {
			args = []byte("{}")
		}
		turn.ToolCalls = append(turn.ToolCalls, protocol.ToolCall{
			ID:        fc.ID,
			Name:      fc.Name,
			Arguments: string(args),
		})
	}
	return turn, nil
}

func (g *Gemini) Structured(ctx context.Context, messages []protocol.Message) (*response.Structured, error) {
	contents, system := toContents(messages)

	cfg := g.baseConfig(system)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = structuredSchema()

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty structured reply", response.ErrSchemaViolation)
	}
	return response.ParseStructured([]byte(text))
}

func (g *Gemini) baseConfig(system string) *genai.GenerateContentConfig {
	temp := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: g.maxOutputTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// toContents converts protocol messages to genai contents, lifting system
// messages into the returned system instruction text.
func toContents(messages []protocol.Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	system := ""

	for _, m := range messages {
		switch m.Role {
		case protocol.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += m.Content

		case protocol.RoleAssistant:
			var parts []*genai.Part
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var args map[string]any
				if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
					args = map[string]any{}
				}
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, args))
			}
			if len(parts) > 0 {
				contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
			}

		case protocol.RoleTool:
			part := genai.NewPartFromFunctionResponse(m.ToolName, map[string]any{
				"result": m.Content,
			})
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))

		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	return contents, system
}

// structuredSchema is the required output shape for the final reply.
func structuredSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"answer": {
				Type:        genai.TypeString,
				Description: "The direct answer to the user's question.",
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Description: "Confidence score between 0 and 1.",
			},
			"reasoning": {
				Type:        genai.TypeArray,
				Description: "Reasoning steps taken to reach the answer.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"answer", "confidence", "reasoning"},
	}
}
