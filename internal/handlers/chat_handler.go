package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/xeoai/chatbot-saas-be/internal/core/llm"
	"github.com/xeoai/chatbot-saas-be/internal/models"
	"github.com/xeoai/chatbot-saas-be/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest is the metered chat request body.
type ChatRequest struct {
	BusinessID string        `json:"businessId" example:"7a393015-15b8-4bcf-8ce6-840f753bfb1c"`
	SessionID  string        `json:"sessionId" example:"visitor-8f2c"`
	Messages   []ChatMessage `json:"messages"`
}

// ChatMessage is one turn of the conversation history.
type ChatMessage struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"What time do you open?"`
}

// streamFrame mirrors the delta chunk shape streamed to the widget.
type streamFrame struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta streamDelta `json:"delta"`
}

type streamDelta struct {
	Content string `json:"content"`
}

// Chat godoc
// @Summary Process a chat message
// @Description Runs the chat pipeline (quota gate, response cache, model call) and streams the answer back as server-sent events. Cache hits are streamed through the same frames as fresh answers.
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Param data body ChatRequest true "Chat request with full message history, latest user message last"
// @Success 200 {string} string "SSE stream of delta frames terminated by [DONE]"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]interface{}
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.BusinessID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "businessId is required",
		})
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	ctx := c.UserContext()
	chatReq := &services.ChatRequest{
		BusinessID: businessID,
		SessionID:  req.SessionID,
		Messages:   messages,
	}

	// Run the pipeline in the background and forward deltas over a
	// channel. The response status is decided by whether the pipeline
	// fails before producing any output: pre-stream failures (validation,
	// quota, unknown business) still get proper JSON error responses.
	deltas := make(chan string, 32)
	done := make(chan error, 1)
	go func() {
		_, err := h.chatService.ProcessChat(ctx, chatReq, func(delta string) error {
			select {
			case deltas <- delta:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		close(deltas)
		done <- err
	}()

	first, open := <-deltas
	if !open {
		if err := <-done; err != nil {
			return writeAppError(c, err)
		}
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if open {
			writeSSEDelta(w, first)
			for delta := range deltas {
				writeSSEDelta(w, delta)
			}
			if err := <-done; err != nil {
				log.Error().Err(err).Msg("chat stream ended with error after headers were sent")
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

// History godoc
// @Summary Get conversation history
// @Description Returns the persisted messages of one widget session, oldest first.
// @Tags Chat
// @Produce json
// @Param businessId path string true "Business ID"
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /chat/{businessId}/history/{sessionId} [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}
	sessionID := c.Params("sessionId")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "sessionId is required",
		})
	}

	messages, err := h.chatService.History(c.UserContext(), businessID, sessionID)
	if err != nil {
		return writeAppError(c, err)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"success":  true,
	})
}

func writeSSEDelta(w *bufio.Writer, delta string) {
	payload, err := json.Marshal(streamFrame{
		Choices: []streamChoice{{Delta: streamDelta{Content: delta}}},
	})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	w.Flush()
}
