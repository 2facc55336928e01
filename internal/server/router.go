// Package server assembles the fiber application and its route table.
package server

import (
	"github.com/arzan03/FilesManager/internal/handlers"
	"github.com/arzan03/FilesManager/internal/middleware"
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Services struct {
	App   *services.AppService
	Auth  *services.AuthService
	Files *services.FileService
}

type Options struct {
	// RequestLogging enables fiber's access log.
	RequestLogging bool
}

func New(svc Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "files-manager",
		BodyLimit: 50 * 1024 * 1024,
	})

	app.Use(recover.New())
	if opts.RequestLogging {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	appHandler := handlers.NewAppHandler(svc.App)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	fileHandler := handlers.NewFileHandler(svc.Files)

	requireToken := middleware.RequireToken(svc.Auth)
	optionalToken := middleware.OptionalToken(svc.Auth)

	app.Get("/status", appHandler.Status)
	app.Get("/stats", appHandler.Stats)

	app.Post("/users", authHandler.Register)
	app.Get("/users/me", authHandler.Me)
	app.Get("/connect", authHandler.Connect)
	app.Get("/disconnect", authHandler.Disconnect)

	app.Post("/files", requireToken, fileHandler.Upload)
	app.Get("/files", requireToken, fileHandler.List)
	app.Get("/files/:id", requireToken, fileHandler.Show)
	app.Get("/files/:id/data", optionalToken, fileHandler.Data)
	app.Put("/files/:id/publish", requireToken, fileHandler.Publish)
	app.Put("/files/:id/unpublish", requireToken, fileHandler.Unpublish)

	return app
}
