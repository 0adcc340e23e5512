package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
)

// writeAppError maps a pipeline error to the HTTP shape the widget
// expects. The quota response carries the limitReached marker so the
// widget can render an upgrade prompt instead of a generic failure.
func writeAppError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process request",
		})
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": appErr.Message,
		})
	case apperr.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": appErr.Message,
		})
	case apperr.KindLimitReached:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":        "LIMIT_REACHED",
			"limitReached": true,
			"message":      appErr.Message,
		})
	case apperr.KindRateLimited:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": apperr.UserMessage(appErr),
		})
	case apperr.KindQuotaExceeded:
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": apperr.UserMessage(appErr),
		})
	case apperr.KindUpstream:
		log.Error().Err(appErr).Msg("upstream failure")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": apperr.UserMessage(appErr),
		})
	default:
		log.Error().Err(appErr).Msg("internal error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": apperr.UserMessage(appErr),
		})
	}
}
