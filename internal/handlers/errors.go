package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/repositories"
	"alfredoptarigan/karmamatch/internal/services"
)

// respondError maps service errors onto HTTP statuses. The upstream message
// is passed through so the client can show it.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrSearchDisabled):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrUpstream) && services.IsTimeout(err):
		status = fiber.StatusGatewayTimeout
	case errors.Is(err, services.ErrUpstream), errors.Is(err, services.ErrEmptyResponse):
		status = fiber.StatusBadGateway
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("❌ Request failed")
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  services.ErrorKind(err),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
		"kind":  "invalid_input",
	})
}
