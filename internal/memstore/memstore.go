// Package memstore provides in-memory implementations of the repository,
// session and queue contracts used by tests in place of MongoDB and Redis.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/arzan03/FilesManager/internal/db"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/arzan03/FilesManager/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Users struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUsers() *Users { return &Users{} }

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *Users) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return primitive.NilObjectID, db.ErrDuplicate
		}
	}
	stored := *u
	stored.ID = primitive.NewObjectID()
	r.users = append(r.users, stored)
	return stored.ID, nil
}

func (r *Users) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

type Files struct {
	mu    sync.RWMutex
	files []models.File
}

func NewFiles() *Files { return &Files{} }

func (r *Files) FindByID(_ context.Context, id primitive.ObjectID) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		f := r.files[i]
		return &f, nil
	}
	return nil, db.ErrNotFound
}

func (r *Files) Insert(_ context.Context, f *models.File) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *f
	stored.ID = primitive.NewObjectID()
	r.files = append(r.files, stored)
	return stored.ID, nil
}

func (r *Files) ListByParent(_ context.Context, owner, parent primitive.ObjectID, skip, limit int64) ([]models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.File{}
	var seen int64
	for _, f := range r.files {
		if f.UserID != owner || f.ParentID != parent {
			continue
		}
		if seen++; seen <= skip {
			continue
		}
		if int64(len(out)) == limit {
			break
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *Files) SetPublic(_ context.Context, id primitive.ObjectID, public bool) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, db.ErrNotFound
	}
	r.files[i].IsPublic = public
	f := r.files[i]
	return &f, nil
}

func (r *Files) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.files)), nil
}

func (r *Files) index(id primitive.ObjectID) int {
	for i, f := range r.files {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Sessions expires entries lazily against Now.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]session
	Now     func() time.Time
}

type session struct {
	userID  string
	expires time.Time
}

func NewSessions() *Sessions {
	return &Sessions{entries: map[string]session{}, Now: time.Now}
}

func (s *Sessions) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || !s.Now().Before(e.expires) {
		delete(s.entries, token)
		return "", storage.ErrNoSession
	}
	return e.userID, nil
}

func (s *Sessions) Set(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = session{userID: userID, expires: s.Now().Add(ttl)}
	return nil
}

func (s *Sessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *Sessions) IsAlive(context.Context) bool { return true }

// Jobs records published jobs and serves them back in order.
type Jobs struct {
	mu   sync.Mutex
	jobs []models.ThumbnailJob
}

func NewJobs() *Jobs { return &Jobs{} }

func (q *Jobs) Publish(_ context.Context, job models.ThumbnailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

// Next pauses briefly on an empty queue and then yields
// storage.ErrQueueEmpty.
func (q *Jobs) Next(ctx context.Context, _ time.Duration) (models.ThumbnailJob, error) {
	q.mu.Lock()
	if len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()
		return job, nil
	}
	q.mu.Unlock()

	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
	}
	return models.ThumbnailJob{}, storage.ErrQueueEmpty
}

// Published returns a copy of the jobs not yet consumed.
func (q *Jobs) Published() []models.ThumbnailJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.ThumbnailJob(nil), q.jobs...)
}

// Pinger reports a fixed liveness.
type Pinger bool

func (p Pinger) IsAlive(context.Context) bool { return bool(p) }
