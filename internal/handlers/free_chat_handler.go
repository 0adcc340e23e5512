package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/xeoai/chatbot-saas-be/internal/services"
)

type FreeChatHandler struct {
	chatService *services.ChatService
	relayAppID  string
}

func NewFreeChatHandler(chatService *services.ChatService, relayAppID string) *FreeChatHandler {
	return &FreeChatHandler{
		chatService: chatService,
		relayAppID:  relayAppID,
	}
}

// FreeChatRequest is the free-tier handoff request body.
type FreeChatRequest struct {
	BusinessID string `json:"businessId" example:"7a393015-15b8-4bcf-8ce6-840f753bfb1c"`
	SessionID  string `json:"sessionId" example:"visitor-8f2c"`
	Message    string `json:"message" example:"Do you deliver on weekends?"`
}

// FreeChat godoc
// @Summary Prepare a free-tier chat handoff
// @Description Assembles the system prompt for a free-tier business and returns it together with a composite chat id, so the widget can talk to the shared relay directly. Paid plans are rejected with usePaid so the widget retries against /chat.
// @Tags Chat
// @Accept json
// @Produce json
// @Param data body FreeChatRequest true "Free chat handoff request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]interface{}
// @Router /free-chat [post]
func (h *FreeChatHandler) FreeChat(c *fiber.Ctx) error {
	var req FreeChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.BusinessID == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Business ID and message are required",
		})
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	result, err := h.chatService.ProcessFreeChat(c.UserContext(), &services.FreeChatRequest{
		BusinessID: businessID,
		SessionID:  req.SessionID,
		Message:    req.Message,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFreeTier) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   services.ErrNotFreeTier.Message,
				"usePaid": true,
			})
		}
		return writeAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"systemPrompt": result.SystemPrompt,
		"chatId":       result.ChatID,
		"businessName": result.BusinessName,
		"appId":        h.relayAppID,
		"success":      true,
	})
}
