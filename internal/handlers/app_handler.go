package handlers

import (
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AppHandler struct {
	app *services.AppService
}

func NewAppHandler(app *services.AppService) *AppHandler {
	return &AppHandler{app: app}
}

// GET /status
func (h *AppHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.app.Status(c.UserContext()))
}

// GET /stats
func (h *AppHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.app.Stats(c.UserContext()))
}
