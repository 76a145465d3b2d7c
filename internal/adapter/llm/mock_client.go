package llm

import (
	"context"
	"fmt"
	"time"
)

// MockClient is an offline stand-in for the completion service. It never
// requests tool calls; it answers with a canned acknowledgement so the rest
// of the stack can be exercised without an API key.
type MockClient struct{}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements Completer.
var _ Completer = (*MockClient)(nil)

// CreateChatCompletion returns a mock response echoing the last user message.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	var lastUser string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			lastUser = msg.Content
		}
	}

	content := "I'm running in offline mode and can't reach the dispatch assistant right now."
	if lastUser != "" {
		content = fmt.Sprintf("(offline mode) I received your message %q but can't act on it without the completion service.", lastUser)
	}

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     len(lastUser) / 4,
			CompletionTokens: len(content) / 4,
			TotalTokens:      (len(lastUser) + len(content)) / 4,
		},
	}, nil
}
