package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/testutil"
	"github.com/localnerve/pcnodetree/internal/types"
	"github.com/localnerve/pcnodetree/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(showDetail bool, err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(showDetail, nil)})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return err
	})
	app.Use(NotFound)
	return app
}

func getError(t *testing.T, app *fiber.App, target string) (*http.Response, utils.ErrorResponseStruct) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)

	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	return resp, body
}

func TestErrorHandlerCustomError(t *testing.T) {
	cause := errors.New("constraint idx_nodes_parent_name")
	customErr := types.NewError(types.ErrDuplicateName, "A node with this name already exists", cause)

	resp, body := getError(t, errorApp(false, fmt.Errorf("wrapped: %w", customErr)), "/fail")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, http.StatusConflict, body.Status)
	assert.Equal(t, types.TypeDuplicateName, body.Error)
	assert.Equal(t, "A node with this name already exists", body.Message)
	assert.False(t, body.Ok)
	assert.Equal(t, "/fail", body.URL)
	assert.NotEmpty(t, body.Timestamp)
	assert.Empty(t, body.Detail)

	_, body = getError(t, errorApp(true, customErr), "/fail")
	assert.Equal(t, cause.Error(), body.Detail)
}

func TestErrorHandlerValidationFields(t *testing.T) {
	validationErr := types.NewValidationError("name is required",
		types.FieldError{Field: "name", Message: "name is required"})

	resp, body := getError(t, errorApp(false, validationErr), "/fail")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "name", body.Errors[0].Field)
}

func TestErrorHandlerFiberError(t *testing.T) {
	resp, body := getError(t, errorApp(false, fiber.ErrMethodNotAllowed), "/fail")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Error)
}

func TestErrorHandlerUnknownError(t *testing.T) {
	boom := errors.New("connection reset")

	resp, body := getError(t, errorApp(false, boom), "/fail")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, types.TypeInternal, body.Error)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Empty(t, body.Detail)

	_, body = getError(t, errorApp(true, boom), "/fail")
	assert.Equal(t, "connection reset", body.Detail)
}

func TestNotFound(t *testing.T) {
	resp, body := getError(t, errorApp(false, nil), "/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Error)
	assert.Equal(t, "/missing", body.URL)
}

func TestValidateRequest(t *testing.T) {
	value := 1.5

	assert.NoError(t, validateRequest(&AddPropertyRequest{Key: "Cores", Value: &value}))

	err := validateRequest(&AddPropertyRequest{Key: " "})
	var customErr *types.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, types.TypeValidation, customErr.Type)
	require.Len(t, customErr.Fields, 2)
	assert.Equal(t, "key", customErr.Fields[0].Field)
	assert.Equal(t, "key is required", customErr.Fields[0].Message)
	assert.Equal(t, "value", customErr.Fields[1].Field)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	err = validateRequest(&CreateNodeRequest{Name: string(long)})
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "name must be at most 255 characters", customErr.Fields[0].Message)
}
