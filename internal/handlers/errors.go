package handlers

import (
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/gofiber/fiber/v2"
)

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{"error": services.MessageOf(err)})
}

func statusOf(err error) int {
	switch services.KindOf(err) {
	case services.KindBadRequest:
		return fiber.StatusBadRequest
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	case services.KindForbidden:
		return fiber.StatusForbidden
	case services.KindNotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
