package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorIs(t *testing.T) {
	err := NewPathSegmentNotFound("Nope", "AlphaPC")
	wrapped := fmt.Errorf("resolve: %w", err)

	assert.ErrorIs(t, wrapped, ErrPathSegmentNotFound)
	assert.NotErrorIs(t, wrapped, ErrRootNodeNotFound)
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Contains(t, err.Message, `"Nope"`)
	assert.Contains(t, err.Message, `"AlphaPC"`)
}

func TestCustomErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewError(ErrNodeNotFound, "Node not found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	var ce *CustomError
	assert.True(t, errors.As(fmt.Errorf("x: %w", err), &ce))
	assert.Equal(t, TypeNodeNotFound, ce.Type)
}

func TestNewPropertyHasChildren(t *testing.T) {
	err := NewPropertyHasChildren("Height", "AlphaPC/Height/Extra")
	assert.ErrorIs(t, err, ErrPropertyHasChildren)
	assert.Contains(t, err.Message, "Height")
	assert.Contains(t, err.Message, "AlphaPC/Height/Extra")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Validation failed", FieldError{Field: "name", Message: "name is required"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Len(t, err.Fields, 1)
}
