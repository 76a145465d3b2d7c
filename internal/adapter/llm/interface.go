package llm

import "context"

// Completer is the completion operation the orchestrator depends on.
type Completer interface {
	// CreateChatCompletion sends a chat completion request.
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure Client implements Completer.
var _ Completer = (*Client)(nil)
