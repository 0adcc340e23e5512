package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/xeoai/chatbot-saas-be/internal/services"
)

type WidgetHandler struct {
	businessService *services.BusinessService
}

func NewWidgetHandler(businessService *services.BusinessService) *WidgetHandler {
	return &WidgetHandler{businessService: businessService}
}

// GetWidget godoc
// @Summary Get widget boot data
// @Description Returns the business name, saved widget config and FAQ-based question suggestions for the embed widget.
// @Tags Widget
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} services.WidgetInfo
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /widget/{businessId} [get]
func (h *WidgetHandler) GetWidget(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	info, err := h.businessService.GetWidgetInfo(c.UserContext(), businessID)
	if err != nil {
		return writeAppError(c, err)
	}

	return c.JSON(info)
}

// GetSuggestions godoc
// @Summary Get quick-reply suggestions
// @Description Returns FAQ questions the widget shows as quick-reply chips.
// @Tags Widget
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /widget/{businessId}/suggestions [get]
func (h *WidgetHandler) GetSuggestions(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	info, err := h.businessService.GetWidgetInfo(c.UserContext(), businessID)
	if err != nil {
		return writeAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"suggestions": info.Suggestions,
	})
}

// GetEmbedQR godoc
// @Summary Get embed QR code
// @Description Renders a PNG QR code that points at the hosted widget page for the business.
// @Tags Widget
// @Produce image/png
// @Param businessId path string true "Business ID"
// @Param size query int false "Image size in pixels, default 256"
// @Success 200 {string} binary "PNG image"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /widget/{businessId}/qr [get]
func (h *WidgetHandler) GetEmbedQR(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	size := c.QueryInt("size", 256)
	png, err := h.businessService.GenerateEmbedQR(c.UserContext(), businessID, size)
	if err != nil {
		return writeAppError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
