// Package schemas validates survey request bodies against JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed submission.schema.json
var submissionSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Type    string // gojsonschema error type, e.g. "required"
	Message string
	Null    bool // the offending value was JSON null
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// First returns the first field error, which is what the API reports.
func (ve *ValidationError) First() FieldError {
	if len(ve.Errors) == 0 {
		return FieldError{Field: "(root)", Message: "invalid document"}
	}
	return ve.Errors[0]
}

// missingTypes are the violations that mean a value is absent or empty.
var missingTypes = map[string]bool{
	"required":             true,
	"string_gte":           true,
	"array_min_properties": true,
}

// Missing reports whether any violation is an absent or empty value. A
// top-level property sent as null counts as absent.
func (ve *ValidationError) Missing() bool {
	for _, fe := range ve.Errors {
		if missingTypes[fe.Type] {
			return true
		}
		if fe.Type == "invalid_type" && fe.Null && !strings.Contains(fe.Field, ".") {
			return true
		}
	}
	return false
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	submissionOnce     sync.Once
	submissionCompiled *gojsonschema.Schema
	submissionErr      error
)

func compiledSubmission() (*gojsonschema.Schema, error) {
	submissionOnce.Do(func() {
		submissionCompiled, submissionErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(submissionSchema))
		if submissionErr != nil {
			submissionErr = &SchemaLoadError{Name: "submission", Message: "invalid schema", Cause: submissionErr}
		}
	})
	return submissionCompiled, submissionErr
}

// ValidateSubmission checks a raw submit body. The body must already be
// well-formed JSON.
func ValidateSubmission(body []byte) error {
	schema, err := compiledSubmission()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("failed to load submission document: %w", err)
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Type:    desc.Type(),
			Message: desc.Description(),
			Null:    desc.Value() == nil,
		})
	}
	return validationErr
}
