package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/types"
)

// SuccessResponseStruct defines the schema for success responses
type SuccessResponseStruct struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// PathResponseStruct defines the schema for path lookups. Type is "node" or "property".
type PathResponseStruct struct {
	Success bool        `json:"success"`
	Type    string      `json:"type"`
	Data    interface{} `json:"data"`
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int                `json:"status"`
	Error     string             `json:"error"`
	Message   string             `json:"message"`
	Ok        bool               `json:"ok"`
	Timestamp string             `json:"timestamp"`
	URL       string             `json:"url"`
	Errors    []types.FieldError `json:"errors,omitempty"`
	Detail    string             `json:"detail,omitempty"`
}

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(SuccessResponseStruct{Success: true, Data: data})
}

// PathResponse sends the result of a path lookup
func PathResponse(c *fiber.Ctx, kind string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(PathResponseStruct{Success: true, Type: kind, Data: data})
}

func newErrorBody(c *fiber.Ctx, status int, code, message string) ErrorResponseStruct {
	return ErrorResponseStruct{
		Status:    status,
		Error:     code,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
	}
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, code string) error {
	return c.Status(status).JSON(newErrorBody(c, status, code, message))
}

// CustomErrorResponse sends a CustomError. detail is included only when non-empty.
func CustomErrorResponse(c *fiber.Ctx, err *types.CustomError, detail string) error {
	body := newErrorBody(c, err.Code, err.Type, err.Message)
	body.Errors = err.Fields
	body.Detail = detail
	return c.Status(err.Code).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "NOT_FOUND")
}
