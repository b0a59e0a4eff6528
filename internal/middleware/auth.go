// Package middleware provides HTTP middleware components for the application.
// It covers session token validation, permission checks and idempotent
// request replay for the fiber routes.
package middleware

import (
	"log"
	"strings"

	"minibank/internal/models"
	"minibank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber Locals key holding *models.SessionClaims.
const ClaimsKey = "claims"

// AuthMiddleware handles session token validation.
// It extracts the JWT from the Authorization header, validates it,
// and stores the claims in the request locals.
type AuthMiddleware struct {
	tokens *utils.TokenIssuer
}

func NewAuthMiddleware(tokens *utils.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handler validates the bearer token and adds its claims to the context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals(ClaimsKey, claims)
	return c.Next()
}

// HasPermission rejects sessions whose claims lack permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return utils.Unauthorized(c, "invalid claims")
		}
		if !claims.HasPermission(permission) {
			log.Printf("Permission %s denied for %s", permission, claims.Subject)
			return utils.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}

// Claims returns the session claims stored by Handler.
func Claims(c *fiber.Ctx) (*models.SessionClaims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*models.SessionClaims)
	return claims, ok && claims != nil
}
