package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/FilesManager/internal/config"
	"github.com/arzan03/FilesManager/internal/db"
	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/server"
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/arzan03/FilesManager/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	mongoDB, err := db.ConnectMongoDB(ctx, cfg.MongoURI(), cfg.DBDatabase)
	if err != nil {
		return err
	}
	defer mongoDB.Disconnect(context.Background())
	log.Info(ctx, "connected to mongodb", "database", cfg.DBDatabase)

	rdb := storage.NewRedisClient(cfg.RedisAddr())
	defer rdb.Close()

	content, err := storage.OpenContentStore(ctx, cfg)
	if err != nil {
		return err
	}

	users := db.NewUserRepository(mongoDB)
	files := db.NewFileRepository(mongoDB)
	sessions := storage.NewSessionStore(rdb)

	app := server.New(server.Services{
		App:   services.NewAppService(sessions, mongoDB, users, files, log),
		Auth:  services.NewAuthService(users, sessions, cfg.SessionTTL, log),
		Files: services.NewFileService(files, content, storage.NewJobQueue(rdb), log),
	}, server.Options{RequestLogging: true})

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
