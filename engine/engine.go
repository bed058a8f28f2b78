// Package engine implements the support agent cycle: load session history,
// run the tool-augmented generation loop against the provider, validate the
// structured reply, and commit the exchange to the session.
//
//	e, err := engine.New(ctx, &cfg)
//	res, err := e.Handle(ctx, "s1", "What does EVA do?")
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kylemil/thoughtful-support/agent"
	"github.com/kylemil/thoughtful-support/core/protocol"
	"github.com/kylemil/thoughtful-support/core/response"
	"github.com/kylemil/thoughtful-support/knowledge"
	"github.com/kylemil/thoughtful-support/observability"
	"github.com/kylemil/thoughtful-support/session"
	"github.com/kylemil/thoughtful-support/tools"
)

// Option configures an Engine after config-driven initialization.
type Option func(*Engine)

// WithClient overrides the config-created provider client.
func WithClient(c agent.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithSessions overrides the session registry.
func WithSessions(r *session.Registry) Option {
	return func(e *Engine) { e.sessions = r }
}

// WithTools overrides the tools registry.
func WithTools(r *tools.Registry) Option {
	return func(e *Engine) { e.tools = r }
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine runs the agent cycle. One Engine serves many sessions; it borrows
// a session's history per call and never holds a session between calls.
type Engine struct {
	client        agent.Client
	sessions      *session.Registry
	tools         *tools.Registry
	knowledge     *knowledge.Store
	observer      observability.Observer
	maxToolRounds int
	systemPrompt  string
}

// New creates an Engine from configuration. The knowledge lookup tool is
// registered into a fresh per-engine tools registry. Functional options
// applied after initialization can override any collaborator for testing.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Engine, error) {
	client, err := agent.New(ctx, &cfg.Agent)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	store, err := knowledge.New(&cfg.Knowledge)
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge store: %w", err)
	}

	registry := tools.NewRegistry()
	if err := store.RegisterTool(registry); err != nil {
		return nil, fmt.Errorf("failed to register knowledge tool: %w", err)
	}

	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		client:        client,
		sessions:      session.NewRegistry(),
		tools:         registry,
		knowledge:     store,
		observer:      observer,
		maxToolRounds: cfg.MaxToolRounds,
		systemPrompt:  cfg.SystemPrompt,
	}

	for _, opt := range opts {
		opt(e)
	}

	if cfg.Knowledge.Watch && cfg.Knowledge.Path != "" {
		if err := store.Watch(ctx, cfg.Knowledge.Path, slog.Default()); err != nil {
			return nil, fmt.Errorf("failed to watch knowledge file: %w", err)
		}
	}

	return e, nil
}

// Knowledge returns the engine's knowledge store.
func (e *Engine) Knowledge() *knowledge.Store {
	return e.knowledge
}

// History returns the recorded turns for a session id.
func (e *Engine) History(sessionID string) ([]session.Turn, bool) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, false
	}
	return s.Turns(), true
}

// Handle runs one agent cycle for the given session and user message.
//
// The session is only mutated on success: exactly one user turn and one
// agent turn are committed, in that order. A provider failure or schema
// violation surfaces the error and leaves the session untouched. Tool
// exchanges are composed per request and never enter the history.
func (e *Engine) Handle(ctx context.Context, sessionID, message string) (*response.Structured, error) {
	sess := e.sessions.GetOrCreate(sessionID)

	e.observer.OnEvent(ctx, observability.Event{
		Type:      EventHandleStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "engine.Handle",
		Data: map[string]any{
			"session_id":     sessionID,
			"message_length": len(message),
			"history_turns":  sess.Len(),
		},
	})

	messages := e.buildMessages(sess.Turns(), message)

	messages, err := e.toolLoop(ctx, sessionID, messages)
	if err != nil {
		e.emitError(ctx, sessionID, err)
		return nil, err
	}

	structured, err := e.client.Structured(ctx, messages)
	if err != nil {
		e.emitError(ctx, sessionID, err)
		return nil, err
	}
	if err := structured.Validate(); err != nil {
		e.emitError(ctx, sessionID, err)
		return nil, err
	}

	sess.Append(
		session.Turn{Role: session.RoleUser, Content: message},
		session.Turn{Role: session.RoleAgent, Content: structured.Answer},
	)

	e.observer.OnEvent(ctx, observability.Event{
		Type:      EventResponse,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "engine.Handle",
		Data: map[string]any{
			"session_id": sessionID,
			"confidence": structured.Confidence,
			"reasoning":  len(structured.Reasoning),
		},
	})

	return structured, nil
}

// toolLoop lets the provider call tools until it stops requesting them or
// the round budget runs out. Tool selection is entirely the provider's
// decision; the engine only dispatches. When the budget is exhausted the
// conversation proceeds to finalization with whatever results it has.
func (e *Engine) toolLoop(ctx context.Context, sessionID string, messages []protocol.Message) ([]protocol.Message, error) {
	defs := e.tools.List()

	for round := 1; round <= e.maxToolRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		turn, err := e.client.Generate(ctx, messages, defs)
		if err != nil {
			return nil, fmt.Errorf("generate failed: %w", err)
		}

		if len(turn.ToolCalls) == 0 {
			if turn.Content != "" {
				messages = append(messages, protocol.Message{
					Role:    protocol.RoleAssistant,
					Content: turn.Content,
				})
			}
			return messages, nil
		}

		messages = append(messages, protocol.Message{
			Role:      protocol.RoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		for _, tc := range turn.ToolCalls {
			e.observer.OnEvent(ctx, observability.Event{
				Type:      EventToolCall,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "engine.toolLoop",
				Data: map[string]any{
					"session_id": sessionID,
					"round":      round,
					"name":       tc.Name,
				},
			})

			result, err := e.tools.Execute(ctx, tc.Name, json.RawMessage(tc.Arguments))
			content := result.Content
			isError := result.IsError
			if err != nil {
				content = "error: " + err.Error()
				isError = true
			}

			messages = append(messages, protocol.Message{
				Role:       protocol.RoleTool,
				ToolName:   tc.Name,
				ToolCallID: tc.ID,
				Content:    content,
			})

			e.observer.OnEvent(ctx, observability.Event{
				Type:      EventToolComplete,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "engine.toolLoop",
				Data: map[string]any{
					"session_id": sessionID,
					"round":      round,
					"name":       tc.Name,
					"error":      isError,
				},
			})
		}
	}

	return messages, nil
}

func (e *Engine) buildMessages(history []session.Turn, message string) []protocol.Message {
	messages := make([]protocol.Message, 0, len(history)+2)

	if e.systemPrompt != "" {
		messages = append(messages, protocol.NewMessage(protocol.RoleSystem, e.systemPrompt))
	}

	for _, t := range history {
		role := protocol.RoleUser
		if t.Role == session.RoleAgent {
			role = protocol.RoleAssistant
		}
		messages = append(messages, protocol.NewMessage(role, t.Content))
	}

	return append(messages, protocol.NewMessage(protocol.RoleUser, message))
}

func (e *Engine) emitError(ctx context.Context, sessionID string, err error) {
	e.observer.OnEvent(ctx, observability.Event{
		Type:      EventError,
		Level:     observability.LevelError,
		Timestamp: time.Now(),
		Source:    "engine.Handle",
		Data: map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		},
	})
}
