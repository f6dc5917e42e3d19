package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "name", Message: "All fields are required."}
	assert.Equal(t, "validation error: name - All fields are required.", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, "All fields are required.", publicMessage(err))
}

func TestErrStore(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ErrStore{Op: "insert response", Err: cause}
	assert.Equal(t, "insert response: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "connection refused", publicMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "answers", Message: "bad"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped ErrValidation",
			err:      fmt.Errorf("submit: %w", &ErrValidation{Field: "answers", Message: "bad"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrStore",
			err:      &ErrStore{Op: "list responses", Err: errors.New("timeout")},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "unknown error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
