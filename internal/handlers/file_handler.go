package handlers

import (
	"fmt"
	"strconv"

	"github.com/arzan03/FilesManager/internal/middleware"
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	files *services.FileService
}

func NewFileHandler(files *services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID any    `json:"parentId"` // 0, "0" or a hex id
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// Upload handles POST /files.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	var request uploadRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	file, err := h.files.Upload(c.UserContext(), middleware.UserID(c), services.UploadParams{
		Name:     request.Name,
		Type:     request.Type,
		ParentID: parentParam(request.ParentID),
		IsPublic: request.IsPublic,
		Data:     request.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// Show handles GET /files/:id.
func (h *FileHandler) Show(c *fiber.Ctx) error {
	file, err := h.files.Show(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(file)
}

// List handles GET /files?parentId=&page=.
func (h *FileHandler) List(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		page = 0
	}

	files, err := h.files.List(c.UserContext(), middleware.UserID(c), c.Query("parentId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(files)
}

// Publish handles PUT /files/:id/publish.
func (h *FileHandler) Publish(c *fiber.Ctx) error {
	return h.setVisibility(c, true)
}

// Unpublish handles PUT /files/:id/unpublish.
func (h *FileHandler) Unpublish(c *fiber.Ctx) error {
	return h.setVisibility(c, false)
}

func (h *FileHandler) setVisibility(c *fiber.Ctx, public bool) error {
	file, err := h.files.SetVisibility(c.UserContext(), middleware.UserID(c), c.Params("id"), public)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(file)
}

// Data handles GET /files/:id/data?size=. Anonymous callers may read
// public files.
func (h *FileHandler) Data(c *fiber.Ctx) error {
	data, mimeType, err := h.files.Download(c.UserContext(), middleware.UserID(c), c.Params("id"), c.Query("size"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeType)
	return c.Send(data)
}

func parentParam(v any) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	case float64:
		if p == 0 {
			return "0"
		}
		return strconv.FormatFloat(p, 'f', -1, 64)
	default:
		return fmt.Sprint(p)
	}
}
