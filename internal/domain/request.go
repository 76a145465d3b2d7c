package domain

import "errors"

// ErrInvalidRequest marks errors caused by a malformed request rather than an
// internal failure. Transport maps these to a 400 response.
var ErrInvalidRequest = errors.New("invalid request")

// TurnRequest carries one operator message into the orchestrator.
type TurnRequest struct {
	Scope          Scope         `json:"scope"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Message        string        `json:"message"`
	History        []ChatMessage `json:"history,omitempty"`
}

// TurnResult is the outcome of processing one operator message.
//
// Success is false only when the completion service itself failed; tool-level
// failures are folded into the assistant's reply and still count as success.
// UsedAI reports whether a completion response shaped the reply.
type TurnResult struct {
	Success        bool          `json:"success"`
	Message        string        `json:"message"`
	ConversationID string        `json:"conversation_id,omitempty"`
	History        []ChatMessage `json:"conversation_history"`
	NeedsMoreInfo  bool          `json:"needs_more_info,omitempty"`
	UsedAI         bool          `json:"used_ai"`
}

// AssistantMessageRequest is the HTTP body for POST /v1/assistant/messages.
type AssistantMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// AssistantMessageResponse is the HTTP response for POST /v1/assistant/messages.
type AssistantMessageResponse struct {
	Success        bool          `json:"success"`
	Message        string        `json:"message"`
	ConversationID string        `json:"conversation_id,omitempty"`
	NeedsMoreInfo  bool          `json:"needs_more_info,omitempty"`
	History        []ChatMessage `json:"conversation_history,omitempty"`
}
