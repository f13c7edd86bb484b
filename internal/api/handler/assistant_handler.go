package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

// AssistantHandler handles POST /aiConversation.
type AssistantHandler struct {
	assistant ports.AssistantService
}

func NewAssistantHandler(assistant ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type conversationMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type conversationRequest struct {
	Messages []conversationMessage `json:"messages"`
	UserCID  string                `json:"userCID"`
}

type conversationResponse struct {
	Response string `json:"response"`
}

// Converse forwards the conversation to the assistant service. Upstream
// failures have already been degraded to an apology reply by the service; the
// only hard failures here are a missing credential and an empty conversation.
//
// @Summary      Chat with the music assistant
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body      conversationRequest  true  "Conversation so far plus the user's CID"
// @Success      200   {object}  conversationResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /aiConversation [post]
func (h *AssistantHandler) Converse(c echo.Context) error {
	var req conversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No messages provided."})
	}

	turns := make([]domain.ConversationTurn, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, domain.ConversationTurn{Sender: m.Sender, Text: m.Text})
	}

	reply, err := h.assistant.Converse(c.Request().Context(), turns, req.UserCID)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "API configuration error"})
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "No messages provided."})
		}
		return err
	}

	return c.JSON(http.StatusOK, conversationResponse{Response: reply})
}
