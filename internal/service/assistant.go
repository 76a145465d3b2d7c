package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetop/dispatcher/internal/adapter/llm"
	"github.com/fleetop/dispatcher/internal/domain"
	"github.com/fleetop/dispatcher/internal/tools"
)

const (
	// maxToolIterations bounds how many completion calls one turn may make.
	maxToolIterations = 5

	// historyWindow is how many persisted messages go to the model. The full
	// history is kept; only the submission is windowed.
	historyWindow = 10

	exhaustedMessage = "I've completed as much of the request as I could. Some steps may still be outstanding - please check the loads board or rephrase what's left."

	degradedMessage = "I'm having trouble reaching the dispatch assistant right now. Your request was not lost - please try again in a moment."
)

const systemPrompt = `You are a dispatch assistant for a trucking operation. You help dispatchers manage loads, drivers, and vehicles using the provided tools.

Rules:
- Use the tools to look up or change operational data; never invent load numbers, driver names, or locations.
- Operators type partial references ("load 4404", "Maria"); pass them to the tools as typed - the system resolves them.
- When a tool reports that a reference matches several records, ask the operator which one they mean.
- When creating a load, collect every required field before calling the tool; ask for whatever is missing.
- Keep answers short and operational. Dispatchers are busy.`

// ProcessMessage runs one orchestrator turn for an operator message. The
// returned error covers only malformed requests; completion-service failures
// degrade into a TurnResult with Success=false.
func (s *Service) ProcessMessage(ctx context.Context, req domain.TurnRequest) (*domain.TurnResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}
	if req.Scope.OrgID == "" {
		return nil, fmt.Errorf("%w: org scope is required", domain.ErrInvalidRequest)
	}

	conv, history, err := s.loadConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	userMsg := domain.ChatMessage{Role: domain.RoleUser, Content: req.Message}
	history = append(history, userMsg)
	s.persistMessage(ctx, conv, userMsg)

	result := &domain.TurnResult{}
	if conv != nil {
		result.ConversationID = conv.ConversationID
	}

	for i := 0; i < maxToolIterations; i++ {
		resp, err := s.completer.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
			Model:      s.config.LLMModel,
			Messages:   outboundMessages(history),
			Tools:      tools.Specs(),
			ToolChoice: "auto",
		})
		if err != nil {
			log.Printf("ERROR: completion call failed: %v", err)
			return degraded(result, history), nil
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
			log.Printf("ERROR: completion response had no choices")
			return degraded(result, history), nil
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			final := domain.ChatMessage{Role: domain.RoleAssistant, Content: msg.Content}
			history = append(history, final)
			s.persistMessage(ctx, conv, final)

			result.Success = true
			result.UsedAI = true
			result.Message = msg.Content
			result.History = history
			result.NeedsMoreInfo = strings.HasSuffix(strings.TrimSpace(msg.Content), "?")
			return result, nil
		}

		calls := fromWireToolCalls(msg.ToolCalls)
		assistantMsg := domain.ChatMessage{
			Role:      domain.RoleAssistant,
			Content:   msg.Content,
			ToolCalls: calls,
		}
		history = append(history, assistantMsg)
		s.persistMessage(ctx, conv, assistantMsg)

		// Tool calls of one model turn run sequentially, in request order, so
		// a later call observes an earlier call's writes.
		for _, call := range calls {
			res := s.executor.Execute(ctx, req.Scope, call)
			s.updateMode(ctx, conv, call, res)

			body, err := json.Marshal(res)
			if err != nil {
				log.Printf("ERROR: failed to marshal result for %s: %v", call.Name, err)
				body = []byte(`{"error":"internal error"}`)
			}
			toolMsg := domain.ChatMessage{
				Role:       domain.RoleTool,
				Content:    string(body),
				ToolCallID: call.ID,
			}
			history = append(history, toolMsg)
			s.persistMessage(ctx, conv, toolMsg)
		}
	}

	// Iteration cap hit: the model kept requesting tools without converging.
	final := domain.ChatMessage{Role: domain.RoleAssistant, Content: exhaustedMessage}
	history = append(history, final)
	s.persistMessage(ctx, conv, final)

	result.Success = true
	result.UsedAI = true
	result.Message = exhaustedMessage
	result.History = history
	return result, nil
}

// loadConversation returns the conversation row (nil in stateless mode) and
// the prior history. Explicit history in the request wins over persistence; a
// conversation id loads persisted history; otherwise a fresh conversation is
// created so the caller can continue the thread.
func (s *Service) loadConversation(ctx context.Context, req domain.TurnRequest) (*domain.Conversation, []domain.ChatMessage, error) {
	if req.History != nil {
		if err := domain.ValidateHistory(req.History); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid history: %v", domain.ErrInvalidRequest, err)
		}
		return nil, req.History, nil
	}

	if req.ConversationID != "" {
		conv, err := s.store.GetConversation(ctx, req.Scope.OrgID, req.ConversationID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get conversation: %w", err)
		}
		if conv != nil {
			msgs, err := s.store.GetConversationMessages(ctx, req.Scope.OrgID, req.ConversationID, 0, 0)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to get conversation messages: %w", err)
			}
			history := make([]domain.ChatMessage, len(msgs))
			for i, m := range msgs {
				history[i] = m.ChatMessage
			}
			return conv, history, nil
		}
		log.Printf("WARN: conversation %s not found for org %s, starting a new one", req.ConversationID, req.Scope.OrgID)
	}

	now := time.Now()
	conv := &domain.Conversation{
		ConversationID: "conv_" + uuid.New().String()[:8],
		OrgID:          req.Scope.OrgID,
		UserID:         req.Scope.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil, nil
}

// persistMessage appends to the conversation when one is being tracked.
// Storage failures are logged; they never block the turn.
func (s *Service) persistMessage(ctx context.Context, conv *domain.Conversation, msg domain.ChatMessage) {
	if conv == nil {
		return
	}
	err := s.store.AppendConversationMessage(ctx, &domain.ConversationMessage{
		MessageID:      "msg_" + uuid.New().String()[:8],
		ConversationID: conv.ConversationID,
		ChatMessage:    msg,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		log.Printf("ERROR: failed to save %s message: %v", msg.Role, err)
	}
}

// updateMode tags the conversation while an operator is mid-way through
// supplying create_load fields, and clears the tag once the load exists.
func (s *Service) updateMode(ctx context.Context, conv *domain.Conversation, call domain.ToolCall, res domain.ToolResult) {
	if conv == nil || call.Name != "create_load" {
		return
	}

	var mode domain.ConversationMode
	switch {
	case !res.Success && len(res.MissingFields) > 0:
		mode = domain.ModeCreatingLoad
	case res.Success:
		mode = domain.ModeNone
	default:
		return
	}
	if conv.Mode == mode {
		return
	}
	if err := s.store.UpdateConversationMode(ctx, conv.OrgID, conv.ConversationID, mode); err != nil {
		log.Printf("ERROR: failed to update conversation mode: %v", err)
		return
	}
	conv.Mode = mode
}

// outboundMessages builds the completion request body: system instructions
// plus the most recent window of history. The window start is pulled back
// over any leading tool messages so a tool block is never severed from the
// assistant message that requested it.
func outboundMessages(history []domain.ChatMessage) []llm.ChatMessage {
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
		for start > 0 && history[start].Role == domain.RoleTool {
			start--
		}
	}
	window := history[start:]

	out := make([]llm.ChatMessage, 0, len(window)+1)
	out = append(out, llm.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	for _, msg := range window {
		out = append(out, toWireMessage(msg))
	}
	return out
}

func toWireMessage(msg domain.ChatMessage) llm.ChatMessage {
	wire := llm.ChatMessage{
		Role:       msg.Role,
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
	}
	for _, call := range msg.ToolCalls {
		args := string(call.Arguments)
		if args == "" {
			args = "{}"
		}
		wire.ToolCalls = append(wire.ToolCalls, llm.ToolCall{
			ID:   call.ID,
			Type: "function",
			Function: llm.ToolCallFunction{
				Name:      call.Name,
				Arguments: args,
			},
		})
	}
	return wire
}

func fromWireToolCalls(calls []llm.ToolCall) []domain.ToolCall {
	out := make([]domain.ToolCall, len(calls))
	for i, call := range calls {
		args := call.Function.Arguments
		if args == "" || !json.Valid([]byte(args)) {
			args = "{}"
		}
		id := call.ID
		if id == "" {
			id = "call_" + uuid.New().String()[:8]
		}
		out[i] = domain.ToolCall{
			ID:        id,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(args),
		}
	}
	return out
}

func degraded(result *domain.TurnResult, history []domain.ChatMessage) *domain.TurnResult {
	result.Success = false
	result.UsedAI = false
	result.Message = degradedMessage
	result.History = history
	return result
}
