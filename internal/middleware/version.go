package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/types"
)

// VersionHeader carries the requested API version
const VersionHeader = "X-Api-Version"

// DefaultVersion is assumed when no version is requested
const DefaultVersion = "1.0.0"

// SupportedMajor is the only API major version served
const SupportedMajor = "1"

// VersionMiddleware parses the X-Api-Version header, stores it in context
// and echoes it on the response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimSpace(c.Get(VersionHeader, DefaultVersion))

		// Support version aliases
		switch version {
		case "", "1", "1.0":
			version = DefaultVersion
		}

		major, _, _ := strings.Cut(version, ".")
		if major != SupportedMajor {
			return types.NewValidationError(
				fmt.Sprintf("Unsupported API version %q", version),
				types.FieldError{Field: VersionHeader, Message: "Supported versions are 1.x"},
			)
		}

		c.Locals("apiVersion", version)
		c.Set(VersionHeader, version)

		return c.Next()
	}
}
