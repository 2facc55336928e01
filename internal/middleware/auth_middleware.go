package middleware

import (
	"context"

	"github.com/arzan03/FilesManager/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TokenHeader = "X-Token"
	userIDKey   = "user_id"
)

// TokenResolver maps a session token to its user id.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (primitive.ObjectID, error)
}

// RequireToken rejects requests without a valid X-Token session and stores
// the user id for the next handlers.
func RequireToken(auth TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.ResolveToken(c.UserContext(), c.Get(TokenHeader))
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": services.MessageOf(err)})
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// OptionalToken resolves X-Token when it is present and valid; anonymous
// requests pass through with no user id.
func OptionalToken(auth TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Get(TokenHeader); token != "" {
			userID, err := auth.ResolveToken(c.UserContext(), token)
			if err == nil {
				c.Locals(userIDKey, userID)
			} else if services.KindOf(err) == services.KindInternal {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": services.MessageOf(err)})
			}
		}
		return c.Next()
	}
}

// UserID returns the id stored by RequireToken or OptionalToken, or the
// zero id for anonymous requests.
func UserID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(userIDKey).(primitive.ObjectID)
	return id
}

func statusFor(err error) int {
	if services.KindOf(err) == services.KindInternal {
		return fiber.StatusInternalServerError
	}
	return fiber.StatusUnauthorized
}
