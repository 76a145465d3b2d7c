package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetConversationMessages retrieves messages for a conversation.
// GET /v1/conversations/:conversation_id/messages
func (h *Handler) GetConversationMessages(c echo.Context) error {
	conversationID := c.Param("conversation_id")

	orgID := c.Request().Header.Get("X-Org-ID")
	if orgID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "X-Org-ID header is required"})
	}

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	beforeSeq := 0
	if b := c.QueryParam("before_seq"); b != "" {
		if val, err := strconv.Atoi(b); err == nil {
			beforeSeq = val
		}
	}

	ctx := c.Request().Context()

	conv, err := h.service.GetConversation(ctx, orgID, conversationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if conv == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}

	messages, err := h.service.GetConversationMessages(ctx, orgID, conversationID, limit, beforeSeq)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversation_id": conversationID,
		"mode":            conv.Mode,
		"messages":        messages,
		"has_more":        len(messages) == limit, // Approximate
	})
}
