package middleware

import (
	"strings"

	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthMiddleware validates the bearer token up front and stores the
// decoded claims for downstream handlers
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			accessToken = c.Cookies("access_token")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AdminOnly allows only admin accounts through
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !domain.Role(claims.Role).IsAdmin() {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// GetClaims returns the validated claims set by AuthMiddleware,
// or nil when the request was not authenticated
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(claimsKey).(*jwt.Claims)
	return claims
}
