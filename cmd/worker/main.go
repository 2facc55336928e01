package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arzan03/FilesManager/internal/config"
	"github.com/arzan03/FilesManager/internal/db"
	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/services"
	"github.com/arzan03/FilesManager/internal/storage"
	"github.com/arzan03/FilesManager/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "worker stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	mongoDB, err := db.ConnectMongoDB(ctx, cfg.MongoURI(), cfg.DBDatabase)
	if err != nil {
		return err
	}
	defer mongoDB.Disconnect(context.Background())

	rdb := storage.NewRedisClient(cfg.RedisAddr())
	defer rdb.Close()

	content, err := storage.OpenContentStore(ctx, cfg)
	if err != nil {
		return err
	}

	thumbnails := services.NewThumbnailService(db.NewFileRepository(mongoDB), content, log)
	w := worker.New(storage.NewJobQueue(rdb), thumbnails, cfg.WorkerConcurrency, log)

	log.Info(ctx, "worker started", "concurrency", cfg.WorkerConcurrency)
	return w.Run(ctx)
}
