package types

import (
	"fmt"
	"net/http"
)

// Error kinds, also used as the "error" code in response bodies
const (
	TypeValidation          = "VALIDATION_ERROR"
	TypeInvalidPath         = "INVALID_PATH"
	TypeParentNotFound      = "PARENT_NOT_FOUND"
	TypeDuplicateName       = "DUPLICATE_NAME"
	TypeNodeNotFound        = "NODE_NOT_FOUND"
	TypeRootNodeNotFound    = "ROOT_NODE_NOT_FOUND"
	TypePathSegmentNotFound = "PATH_SEGMENT_NOT_FOUND"
	TypePropertyHasChildren = "PROPERTY_PATH_ERROR"
	TypeUnauthorized        = "UNAUTHORIZED"
	TypeForbidden           = "FORBIDDEN"
	TypeInternal            = "INTERNAL_ERROR"
)

// Sentinels for errors.Is; a CustomError matches the sentinel of the same Type.
var (
	ErrValidation          = &CustomError{Code: http.StatusBadRequest, Type: TypeValidation}
	ErrInvalidPath         = &CustomError{Code: http.StatusBadRequest, Type: TypeInvalidPath}
	ErrParentNotFound      = &CustomError{Code: http.StatusNotFound, Type: TypeParentNotFound}
	ErrDuplicateName       = &CustomError{Code: http.StatusConflict, Type: TypeDuplicateName}
	ErrNodeNotFound        = &CustomError{Code: http.StatusNotFound, Type: TypeNodeNotFound}
	ErrRootNodeNotFound    = &CustomError{Code: http.StatusNotFound, Type: TypeRootNodeNotFound}
	ErrPathSegmentNotFound = &CustomError{Code: http.StatusNotFound, Type: TypePathSegmentNotFound}
	ErrPropertyHasChildren = &CustomError{Code: http.StatusNotFound, Type: TypePropertyHasChildren}
)

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CustomError is an error with an HTTP status and a machine readable type
type CustomError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Type    string       `json:"type"`
	Fields  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s [type: %s]: %v", e.Code, e.Message, e.Type, e.Err)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unwrap returns the underlying cause
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError with the same Type
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// NewError derives an error from a sentinel with a message and optional cause
func NewError(kind *CustomError, message string, cause error) *CustomError {
	return &CustomError{
		Code:    kind.Code,
		Message: message,
		Type:    kind.Type,
		Err:     cause,
	}
}

// NewValidationError builds a ValidationError carrying field details
func NewValidationError(message string, fields ...FieldError) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
		Type:    TypeValidation,
		Fields:  fields,
	}
}

// NewPathSegmentNotFound names the unresolved segment and the consumed prefix
func NewPathSegmentNotFound(segment, prefix string) *CustomError {
	return NewError(ErrPathSegmentNotFound,
		fmt.Sprintf("Node or property %q not found under %q", segment, prefix), nil)
}

// NewPropertyHasChildren names the property and the deeper path attempted
func NewPropertyHasChildren(property, deeperPath string) *CustomError {
	return NewError(ErrPropertyHasChildren,
		fmt.Sprintf("Property %q cannot have child elements in path: %s", property, deeperPath), nil)
}
