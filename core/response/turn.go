package response

import "github.com/kylemil/thoughtful-support/core/protocol"

// ModelTurn is one provider reply inside the tool loop: either free text,
// one or more tool calls, or both. An empty ToolCalls slice means the model
// considers the exchange ready for finalization.
type ModelTurn struct {
	Content   string
	ToolCalls []protocol.ToolCall
}
