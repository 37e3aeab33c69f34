package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinevalley/discovery-api/internal/dto"
	"github.com/dinevalley/discovery-api/internal/llm"
	"github.com/dinevalley/discovery-api/internal/service"
)

// ChatHandler exposes the assistant chat endpoint.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Answer handles POST /chat requests.
func (h *ChatHandler) Answer(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	answer, err := h.chat.Answer(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionRequired):
			return Error(c, http.StatusBadRequest, "question is required")
		case errors.Is(err, llm.ErrNotConfigured):
			return Error(c, http.StatusServiceUnavailable, "assistant is not configured")
		default:
			return Error(c, http.StatusBadGateway, "assistant request failed")
		}
	}

	return Success(c, http.StatusOK, "answer generated", answer)
}
