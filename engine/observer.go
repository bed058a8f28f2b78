package engine

import "github.com/kylemil/thoughtful-support/observability"

// Engine event types emitted during the agent cycle.
const (
	EventHandleStart  observability.EventType = "engine.handle.start"
	EventToolCall     observability.EventType = "engine.tool.call"
	EventToolComplete observability.EventType = "engine.tool.complete"
	EventResponse     observability.EventType = "engine.response"
	EventError        observability.EventType = "engine.error"
)
