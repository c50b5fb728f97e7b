package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// statusFor maps domain rejections to client errors; anything else is the
// caller's 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotPublished),
		errors.Is(err, service.ErrPlatformNotConnected),
		errors.Is(err, service.ErrMissingPlatformPostID),
		errors.Is(err, service.ErrUnknownPlatform),
		errors.Is(err, service.ErrScheduleLocked):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
