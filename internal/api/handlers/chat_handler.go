package handlers

import (
	"github.com/leanlee/shopchat/internal/dialog"
	"github.com/leanlee/shopchat/internal/dto"
	"github.com/leanlee/shopchat/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat runs one non-interactive conversation turn: the context blob from the
// request is threaded through the dialogue engine and handed back to the
// client for the next turn.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	conv := req.Context
	if conv == nil {
		conv = &dialog.Context{}
	}

	reply, next, err := h.chatService.Respond(c.Context(), req.Message, conv, false)
	if err != nil {
		h.logger.Error("Turn failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	return c.JSON(dto.ChatResponse{Reply: reply, Context: next})
}

// Health reports service liveness.
func (h *ChatHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "OK"})
}
