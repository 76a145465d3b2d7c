package service

import (
	"context"
	"fmt"

	"github.com/fleetop/dispatcher/internal/domain"
)

// GetConversation returns one conversation, or nil when it does not exist.
func (s *Service) GetConversation(ctx context.Context, orgID, conversationID string) (*domain.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, orgID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conv, nil
}

// GetConversationMessages returns a window of a conversation's messages in
// sequence order.
func (s *Service) GetConversationMessages(ctx context.Context, orgID, conversationID string, limit, beforeSeq int) ([]domain.ConversationMessage, error) {
	messages, err := s.store.GetConversationMessages(ctx, orgID, conversationID, limit, beforeSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}
