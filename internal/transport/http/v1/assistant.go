package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetop/dispatcher/internal/domain"
)

// PostAssistantMessage processes one operator message through the dispatch
// assistant.
// POST /v1/assistant/messages
func (h *Handler) PostAssistantMessage(c echo.Context) error {
	var req domain.AssistantMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	orgID := c.Request().Header.Get("X-Org-ID")
	if orgID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "X-Org-ID header is required"})
	}
	userID := c.Request().Header.Get("X-User-ID")

	result, err := h.service.ProcessMessage(c.Request().Context(), domain.TurnRequest{
		Scope:          domain.Scope{OrgID: orgID, UserID: userID},
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, domain.AssistantMessageResponse{
		Success:        result.Success,
		Message:        result.Message,
		ConversationID: result.ConversationID,
		NeedsMoreInfo:  result.NeedsMoreInfo,
		History:        result.History,
	})
}
