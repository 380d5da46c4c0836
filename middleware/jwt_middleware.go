package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"uas_backend/app/utils"
	"uas_backend/helper"
)

// Context locals set for downstream handlers once a request is authorized.
const (
	LocalUserID    = "userID"
	LocalUserEmail = "userEmail"
)

// JWTMiddleware gates a route group behind bearer-token authentication.
// A request either comes out authorized, with the token's identity claims in
// the request locals, or is rejected with 403 before any handler runs. The
// rejection does not say which check failed beyond the scheme/token split.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return helper.Error(c, fiber.StatusForbidden, "Invalid authorization code.", "")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return helper.Error(c, fiber.StatusForbidden, "Invalid authentication scheme.", "")
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			return helper.Error(c, fiber.StatusForbidden, "Invalid token or expired token.", "")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserEmail, claims.Subject)
		return c.Next()
	}
}
