package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"emberarena/internal/models"
	"emberarena/internal/service"
	"emberarena/internal/session"
)

const sessionLocal = "session"

// RequireAuth resolves the bearer token into a session context stored in Locals.
func RequireAuth(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header with a Bearer token is required",
			})
		}
		sc, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return respondError(c, err, "authenticate")
		}
		c.Locals(sessionLocal, sc)
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(c *fiber.Ctx) error {
	sc := currentSession(c)
	if sc == nil || sc.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin role required",
		})
	}
	return c.Next()
}

func currentSession(c *fiber.Ctx) *session.Context {
	sc, _ := c.Locals(sessionLocal).(*session.Context)
	return sc
}

// callerID returns the signed-in user; only valid behind RequireAuth.
func callerID(c *fiber.Ctx) string {
	if sc := currentSession(c); sc != nil {
		return sc.UserID
	}
	return ""
}

// RateLimitKeyByUser returns a key for the rate limiter: per-user when a session is resolved, else per-IP.
func RateLimitKeyByUser(c *fiber.Ctx) string {
	if sc := currentSession(c); sc != nil {
		return "user:" + sc.UserID
	}
	return c.IP()
}

// NewRateLimiter limits each caller to max requests per window.
func NewRateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: RateLimitKeyByUser,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
