package services

import (
	"context"

	"github.com/arzan03/FilesManager/internal/logging"
)

type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// AppService reports store liveness and document counts. It never fails:
// unreachable stores show up as false or zero.
type AppService struct {
	redis Pinger
	db    Pinger
	users UserRepository
	files FileRepository
	log   logging.Logger
}

func NewAppService(redis, db Pinger, users UserRepository, files FileRepository, log logging.Logger) *AppService {
	return &AppService{redis: redis, db: db, users: users, files: files, log: log.With("service", "app")}
}

func (s *AppService) Status(ctx context.Context) Status {
	return Status{Redis: s.redis.IsAlive(ctx), DB: s.db.IsAlive(ctx)}
}

func (s *AppService) Stats(ctx context.Context) Stats {
	users, err := s.users.Count(ctx)
	if err != nil {
		s.log.Warn(ctx, "count users", "error", err)
		users = 0
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		s.log.Warn(ctx, "count files", "error", err)
		files = 0
	}
	return Stats{Users: users, Files: files}
}
