package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Conversation groups the messages of one operator's assistant thread.
type Conversation struct {
	ConversationID string           `json:"conversation_id"`
	OrgID          string           `json:"org_id"`
	UserID         string           `json:"user_id"`
	Mode           ConversationMode `json:"mode,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ChatMessage is one entry in a conversation history. The role decides which
// fields are meaningful: assistant messages may carry ToolCalls, tool
// messages must carry the ToolCallID of the call they answer.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ConversationMessage is the persisted form of a ChatMessage.
type ConversationMessage struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	Seq            int       `json:"seq"`
	ChatMessage
	CreatedAt time.Time `json:"created_at"`
}

// ValidateHistory checks the tool-pairing invariant: every tool message must
// reference a tool call issued by the immediately preceding assistant message.
func ValidateHistory(history []ChatMessage) error {
	for i, msg := range history {
		if msg.Role != RoleTool {
			continue
		}
		if msg.ToolCallID == "" {
			return fmt.Errorf("tool message at index %d has no tool_call_id", i)
		}
		if !precededByCall(history, i, msg.ToolCallID) {
			return fmt.Errorf("tool message at index %d references unknown tool_call_id %s", i, msg.ToolCallID)
		}
	}
	return nil
}

// precededByCall walks back over the contiguous block of tool messages ending
// at index i and checks the assistant message directly before it issued callID.
func precededByCall(history []ChatMessage, i int, callID string) bool {
	j := i - 1
	for j >= 0 && history[j].Role == RoleTool {
		j--
	}
	if j < 0 || history[j].Role != RoleAssistant {
		return false
	}
	for _, tc := range history[j].ToolCalls {
		if tc.ID == callID {
			return true
		}
	}
	return false
}
