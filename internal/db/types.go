package db

import (
	"time"

	"github.com/jonathan/team-survey/internal/survey"
)

// Response is one stored survey submission
type Response struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Department   string         `json:"department"`
	Organization string         `json:"organization"`
	Location     string         `json:"location"`
	Answers      survey.Answers `json:"answers"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}

// AnswerRow is the projection the dashboard aggregates over
type AnswerRow struct {
	Department string
	Answers    survey.Answers
}

// ResponseFilter holds optional equality filters; empty fields match everything
type ResponseFilter struct {
	Department string
	Location   string
}
