package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/fleetop/dispatcher/internal/adapter/llm"
	"github.com/fleetop/dispatcher/internal/domain"
)

func postAssistant(t *testing.T, h *Handler, body domain.AssistantMessageRequest, orgID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	reqBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/assistant/messages", bytes.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if orgID != "" {
		req.Header.Set("X-Org-ID", orgID)
		req.Header.Set("X-User-ID", "u1")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.PostAssistantMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestPostAssistantMessage(t *testing.T) {
	completer := &scriptedCompleter{responses: []*llm.ChatCompletionResponse{
		{Choices: []llm.Choice{{Message: &llm.ChatMessage{Role: "assistant", Content: "No open loads right now."}}}},
	}}
	h, _ := newTestHandler(t, completer)

	rec := postAssistant(t, h, domain.AssistantMessageRequest{Message: "any open loads?"}, "org1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.AssistantMessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "No open loads right now.", resp.Message)
	assert.NotEmpty(t, resp.ConversationID)
	assert.Len(t, resp.History, 2)
}

func TestPostAssistantMessageMissingOrg(t *testing.T) {
	h, _ := newTestHandler(t, &scriptedCompleter{})

	rec := postAssistant(t, h, domain.AssistantMessageRequest{Message: "hello"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostAssistantMessageMissingMessage(t *testing.T) {
	h, _ := newTestHandler(t, &scriptedCompleter{})

	rec := postAssistant(t, h, domain.AssistantMessageRequest{}, "org1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostAssistantMessageStoreFailure(t *testing.T) {
	h, db := newTestHandler(t, &scriptedCompleter{})
	db.Close()

	rec := postAssistant(t, h, domain.AssistantMessageRequest{
		Message:        "hello",
		ConversationID: "conv_gone",
	}, "org1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPostAssistantMessageDegradedTurn(t *testing.T) {
	completer := &scriptedCompleter{err: fmt.Errorf("upstream unavailable")}
	h, _ := newTestHandler(t, completer)

	rec := postAssistant(t, h, domain.AssistantMessageRequest{Message: "assign Maria to 4404"}, "org1")
	// A completion failure is still a 200: the operator gets a message, not an error.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.AssistantMessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotContains(t, resp.Message, "upstream unavailable")
}

func TestPostAssistantMessageContinuesConversation(t *testing.T) {
	completer := &scriptedCompleter{responses: []*llm.ChatCompletionResponse{
		{Choices: []llm.Choice{{Message: &llm.ChatMessage{Role: "assistant", Content: "Hi there."}}}},
	}}
	h, _ := newTestHandler(t, completer)

	rec := postAssistant(t, h, domain.AssistantMessageRequest{Message: "hi"}, "org1")
	var first domain.AssistantMessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postAssistant(t, h, domain.AssistantMessageRequest{
		Message:        "still there?",
		ConversationID: first.ConversationID,
	}, "org1")
	var second domain.AssistantMessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Len(t, second.History, 4)
}
