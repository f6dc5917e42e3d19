// Package types provides request and response types shared by the survey API and CLI.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/team-survey/internal/survey"
)

var validate = validator.New()

// SubmitRequest is the body of POST /api/submit.
type SubmitRequest struct {
	Name         string         `json:"name" validate:"required,max=200"`
	Department   string         `json:"department" validate:"required,max=200"`
	Organization string         `json:"organization" validate:"required,max=200"`
	Location     string         `json:"location" validate:"required,max=200"`
	Answers      survey.Answers `json:"answers" validate:"required,min=1"`
}

// Normalize trims surrounding whitespace from the metadata fields.
func (r *SubmitRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Department = strings.TrimSpace(r.Department)
	r.Organization = strings.TrimSpace(r.Organization)
	r.Location = strings.TrimSpace(r.Location)
}

// Validate validates the SubmitRequest using the validator.
func (r *SubmitRequest) Validate() error {
	return validate.Struct(r)
}

// SubmitResponse is returned with 201 Created.
type SubmitResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// SubmitSuccessMessage is the message returned for an accepted submission.
const SubmitSuccessMessage = "Success! Your response has been submitted."

// FilterOptions lists the distinct values respondents have used.
type FilterOptions struct {
	Departments []string `json:"departments"`
	Locations   []string `json:"locations"`
}
