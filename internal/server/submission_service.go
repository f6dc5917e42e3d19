package server

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/team-survey/internal/db"
	"github.com/jonathan/team-survey/internal/sheets"
	"github.com/jonathan/team-survey/internal/survey"
	"github.com/jonathan/team-survey/internal/types"
	"go.uber.org/zap"
)

// MissingFieldsMessage is reported when a required submission field is absent.
const MissingFieldsMessage = "All fields are required."

// SubmissionService validates and stores survey submissions.
type SubmissionService struct {
	store   Store
	catalog *survey.Catalog
	mirror  sheets.Enqueuer
	logger  *zap.Logger
}

// NewSubmissionService creates a SubmissionService. A nil mirror disables
// spreadsheet mirroring.
func NewSubmissionService(store Store, catalog *survey.Catalog, mirror sheets.Enqueuer, logger *zap.Logger) *SubmissionService {
	if mirror == nil {
		mirror = sheets.Discard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		store:   store,
		catalog: catalog,
		mirror:  mirror,
		logger:  logger,
	}
}

// Submit stores req and returns the new response id. The spreadsheet mirror
// is queued after the insert commits and never affects the result.
func (s *SubmissionService) Submit(ctx context.Context, req *types.SubmitRequest) (int64, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return 0, fromValidator(err)
	}
	if err := req.Answers.Validate(s.catalog); err != nil {
		return 0, &ErrValidation{Field: "answers", Message: err.Error()}
	}

	resp := &db.Response{
		Name:         req.Name,
		Department:   req.Department,
		Organization: req.Organization,
		Location:     req.Location,
		Answers:      req.Answers,
	}
	id, err := s.store.InsertResponse(ctx, resp)
	if err != nil {
		return 0, &ErrStore{Op: "insert response", Err: err}
	}

	s.logger.Info("response stored",
		zap.Int64("id", id),
		zap.String("department", resp.Department),
		zap.String("location", resp.Location),
		zap.Int("answers", len(resp.Answers)))

	s.mirror.Enqueue(sheets.Entry{
		Name:        resp.Name,
		Department:  resp.Department,
		Location:    resp.Location,
		Answers:     resp.Answers,
		SubmittedAt: resp.SubmittedAt,
	})
	return id, nil
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "(root)", Message: err.Error()}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "min":
		return &ErrValidation{Field: field, Message: MissingFieldsMessage}
	case "max":
		return &ErrValidation{Field: field, Message: field + " must be at most " + fe.Param() + " characters"}
	default:
		return &ErrValidation{Field: field, Message: field + " is invalid"}
	}
}
