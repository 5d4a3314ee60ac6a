package middleware

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/services"
	"github.com/localnerve/pcnodetree/internal/types"
	"go.uber.org/zap"
)

// SessionCookie is the Authorizer session cookie name
const SessionCookie = "cookie_session"

// AdminRole is required of Authorizer sessions
const AdminRole = "admin"

// Auth selects the authentication scheme configured by AUTH_MODE
func Auth(cfg *config.Config, log *zap.Logger) fiber.Handler {
	if cfg.AuthMode == config.AuthModeAuthorizer {
		return AuthAdmin(cfg, log)
	}
	return AuthServiceRole(cfg.ServiceRoleKey)
}

// AuthServiceRole requires "Authorization: Bearer <key>" matching the service role key
func AuthServiceRole(key string) fiber.Handler {
	expected := []byte(key)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Missing or malformed bearer token",
				Type:    types.TypeUnauthorized,
			}
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), expected) != 1 {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Invalid service role key",
				Type:    types.TypeForbidden,
			}
		}

		return c.Next()
	}
}

// AuthAdmin validates that the Authorizer session has the admin role
func AuthAdmin(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := c.Cookies(SessionCookie)
		if session == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Authorizer cookie %q not found", SessionCookie),
				Type:    types.TypeUnauthorized,
			}
		}

		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(c.UserContext(), cfg, c.Protocol(), c.Hostname(), log); err != nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			}
		}

		user, err := services.ValidateSession(session, []string{AdminRole})
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: fmt.Sprintf("Invalid session: %v", err),
				Type:    types.TypeForbidden,
			}
		}

		c.Locals("user", user)
		return c.Next()
	}
}
