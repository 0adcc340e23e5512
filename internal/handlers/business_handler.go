package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/xeoai/chatbot-saas-be/internal/services"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// GetUsage godoc
// @Summary Get monthly usage
// @Description Returns the current month's message count against the business owner's plan limit.
// @Tags Business
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} services.UsageStats
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /business/{businessId}/usage [get]
func (h *BusinessHandler) GetUsage(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	stats, err := h.businessService.GetUsageStats(c.UserContext(), businessID)
	if err != nil {
		return writeAppError(c, err)
	}

	return c.JSON(stats)
}

// GetCacheStats godoc
// @Summary Get cached answer stats
// @Description Lists the most reused cached answers for a business, most hits first.
// @Tags Business
// @Produce json
// @Param businessId path string true "Business ID"
// @Param limit query int false "Max rows, default 20"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /business/{businessId}/cache [get]
func (h *BusinessHandler) GetCacheStats(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid businessId format",
		})
	}

	entries, err := h.businessService.GetCacheStats(c.UserContext(), businessID, c.QueryInt("limit", 20))
	if err != nil {
		return writeAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}
