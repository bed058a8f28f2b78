package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/kylemil/thoughtful-support/core/protocol"
	"github.com/kylemil/thoughtful-support/core/response"
)

// Stub is a deterministic offline Client for development and demos. It
// requests the first available tool for product questions, recalls names
// stated earlier in the conversation, and echoes everything else.
type Stub struct{}

// NewStub creates a Stub client.
func NewStub() *Stub {
	return &Stub{}
}

var productKeywords = []string{"eva", "cam", "phil", "thoughtful"}

func (s *Stub) Generate(_ context.Context, messages []protocol.Message, tools []protocol.Tool) (*response.ModelTurn, error) {
	last := lastUserMessage(messages)

	if len(tools) > 0 && !hasToolResult(messages) && mentionsProduct(last) {
		return &response.ModelTurn{
			ToolCalls: []protocol.ToolCall{{
				Name:      tools[0].Name,
				Arguments: fmt.Sprintf(`{"query":%q}`, last),
			}},
		}, nil
	}

	return &response.ModelTurn{Content: "Understood."}, nil
}

func (s *Stub) Structured(_ context.Context, messages []protocol.Message) (*response.Structured, error) {
	last := lastUserMessage(messages)

	if content, ok := lastToolResult(messages); ok {
		return &response.Structured{
			Answer:     content,
			Confidence: 0.95,
			Reasoning: []string{
				"The question mentions a Thoughtful AI product.",
				"Consulted the knowledge base tool.",
				"Answered from the matched entry.",
			},
		}, nil
	}

	if strings.Contains(strings.ToLower(last), "name") {
		if name, ok := recallName(messages); ok {
			return &response.Structured{
				Answer:     fmt.Sprintf("Your name is %s.", name),
				Confidence: 0.9,
				Reasoning: []string{
					"The user stated their name earlier in this conversation.",
					"Recalled it from the session history.",
				},
			}, nil
		}
	}

	return &response.Structured{
		Answer:     fmt.Sprintf("You said: %q. How can I help you with Thoughtful AI's agents?", last),
		Confidence: 0.5,
		Reasoning:  []string{"No knowledge base entry applies; answered conversationally."},
	}, nil
}

func lastUserMessage(messages []protocol.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == protocol.RoleUser && messages[i].ToolName == "" {
			return messages[i].Content
		}
	}
	return ""
}

func hasToolResult(messages []protocol.Message) bool {
	for _, m := range messages {
		if m.Role == protocol.RoleTool {
			return true
		}
	}
	return false
}

func lastToolResult(messages []protocol.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == protocol.RoleTool {
			return messages[i].Content, true
		}
	}
	return "", false
}

func mentionsProduct(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range productKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// recallName scans user turns for a "my name is X" statement.
func recallName(messages []protocol.Message) (string, bool) {
	const marker = "my name is "
	for _, m := range messages {
		if m.Role != protocol.RoleUser {
			continue
		}
		lower := strings.ToLower(m.Content)
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		rest := m.Content[idx+len(marker):]
		name := strings.FieldsFunc(rest, func(r rune) bool {
			return r == ' ' || r == '.' || r == ',' || r == '!' || r == '?'
		})
		if len(name) > 0 {
			return name[0], true
		}
	}
	return "", false
}
