package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/FilesManager/internal/db"
	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/arzan03/FilesManager/internal/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// hashCost is a variable so tests can lower it.
var hashCost = bcrypt.DefaultCost

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService registers users and manages their session tokens.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	ttl      time.Duration
	log      logging.Logger
}

func NewAuthService(users UserRepository, sessions SessionStore, ttl time.Duration, log logging.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, ttl: ttl, log: log.With("service", "auth")}
}

// Register creates a user with a bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, db.ErrNotFound) {
		s.log.Error(ctx, "lookup user by email", "error", err)
		return nil, internal(err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, internal(err)
	}

	user := &models.User{Email: email, Password: hash}
	id, err := s.users.Insert(ctx, user)
	if errors.Is(err, db.ErrDuplicate) {
		// lost a race with a concurrent registration
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		s.log.Error(ctx, "insert user", "error", err)
		return nil, internal(err)
	}
	user.ID = id

	s.log.Info(ctx, "user registered", "user_id", id.Hex())
	return user, nil
}

// Login checks the credentials in a Basic Authorization header and opens a
// session. The returned token resolves to the user until it expires or is
// revoked.
func (s *AuthService) Login(ctx context.Context, authHeader string) (string, error) {
	email, password, ok := parseBasicAuth(authHeader)
	if !ok {
		return "", ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		s.log.Error(ctx, "lookup user by email", "error", err)
		return "", internal(err)
	}
	if !VerifyPassword(password, user.Password) {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	if err := s.sessions.Set(ctx, token, user.ID.Hex(), s.ttl); err != nil {
		s.log.Error(ctx, "store session", "error", err)
		return "", internal(err)
	}
	return token, nil
}

// Logout revokes token immediately.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.ResolveToken(ctx, token); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.log.Error(ctx, "delete session", "error", err)
		return internal(err)
	}
	return nil
}

// ResolveToken returns the user id behind token, or ErrUnauthorized when
// the token is empty, unknown or expired.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (primitive.ObjectID, error) {
	if token == "" {
		return primitive.NilObjectID, ErrUnauthorized
	}

	raw, err := s.sessions.Get(ctx, token)
	if errors.Is(err, storage.ErrNoSession) {
		return primitive.NilObjectID, ErrUnauthorized
	}
	if err != nil {
		s.log.Error(ctx, "read session", "error", err)
		return primitive.NilObjectID, internal(err)
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrUnauthorized
	}
	return id, nil
}

// CurrentUser resolves token and loads the user it belongs to.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	id, err := s.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, internal(err)
	}
	return user, nil
}

func parseBasicAuth(header string) (email, password string, ok bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}
	email, password, found = strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
