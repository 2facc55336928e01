package handlers

import (
	"github.com/arzan03/FilesManager/internal/middleware"
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /users.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.auth.Register(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

// Connect handles GET /connect with a Basic Authorization header.
func (h *AuthHandler) Connect(c *fiber.Ctx) error {
	token, err := h.auth.Login(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// Disconnect handles GET /disconnect.
func (h *AuthHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), c.Get(middleware.TokenHeader)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /users/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.auth.CurrentUser(c.UserContext(), c.Get(middleware.TokenHeader))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": user.ID, "email": user.Email})
}
