package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/handlers"
	"github.com/localnerve/pcnodetree/internal/testutil"
	"github.com/localnerve/pcnodetree/internal/utils"
	"github.com/stretchr/testify/assert"
)

const testKey = "service-role-key"

func protectedApp(auth fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(false, nil)})
	app.Get("/protected", auth, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthServiceRole(t *testing.T) {
	app := protectedApp(Auth(&config.Config{AuthMode: config.AuthModeToken, ServiceRoleKey: testKey}, nil))

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid", "Bearer " + testKey, http.StatusOK, ""},
		{"scheme is case insensitive", "bearer " + testKey, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "Basic " + testKey, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong key", "Bearer nope", http.StatusForbidden, "FORBIDDEN"},
		{"key prefix", "Bearer " + testKey[:5], http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers[fiber.HeaderAuthorization] = tt.header
			}
			resp := testutil.Request(t, app, http.MethodGet, "/protected", nil, headers)
			testutil.AssertStatus(t, resp, tt.status)

			if tt.code != "" {
				var body utils.ErrorResponseStruct
				testutil.ParseJSON(t, resp, &body)
				assert.Equal(t, tt.code, body.Error)
			}
		})
	}
}

func TestAuthAdmin(t *testing.T) {
	cfg := &config.Config{
		AuthMode:      config.AuthModeAuthorizer,
		AuthzURL:      "http://127.0.0.1:1",
		AuthzClientID: "client",
	}
	app := protectedApp(Auth(cfg, nil))

	t.Run("missing cookie", func(t *testing.T) {
		resp := testutil.Request(t, app, http.MethodGet, "/protected", nil, nil)
		testutil.AssertStatus(t, resp, http.StatusUnauthorized)

		var body utils.ErrorResponseStruct
		testutil.ParseJSON(t, resp, &body)
		assert.Equal(t, "UNAUTHORIZED", body.Error)
		assert.Contains(t, body.Message, SessionCookie)
	})

	t.Run("authorizer unavailable", func(t *testing.T) {
		resp := testutil.Request(t, app, http.MethodGet, "/protected", nil,
			map[string]string{"Cookie": SessionCookie + "=abc"})
		testutil.AssertStatus(t, resp, http.StatusServiceUnavailable)
	})
}
