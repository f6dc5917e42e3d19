// Package server provides the HTTP API for the team survey.
package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStore wraps a failed read or write against the answer store.
type ErrStore struct {
	Op  string
	Err error
}

func (e *ErrStore) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrStore) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// publicMessage is the text placed in the {"error": ...} body. Store errors
// surface the underlying cause.
func publicMessage(err error) string {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var storeErr *ErrStore
	if errors.As(err, &storeErr) && storeErr.Err != nil {
		return storeErr.Err.Error()
	}
	return err.Error()
}
