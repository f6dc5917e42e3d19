package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/team-survey/internal/survey"
)

// InsertResponse stores a submission and returns its server-assigned id.
// ID and SubmittedAt on r are filled from the inserted row.
func (db *DB) InsertResponse(ctx context.Context, r *Response) (int64, error) {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal answers: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO responses (name, department, organization, location, answers)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, submitted_at`,
		r.Name, r.Department, r.Organization, r.Location, answers,
	).Scan(&r.ID, &r.SubmittedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert response: %w", err)
	}
	return r.ID, nil
}

// buildAnswerRowsQuery returns the SELECT for ListAnswerRows with one
// positional parameter per non-empty filter field.
func buildAnswerRowsQuery(filter ResponseFilter) (string, []any) {
	query := `SELECT department, answers FROM responses`
	var clauses []string
	var args []any
	argNum := 1

	if filter.Department != "" {
		clauses = append(clauses, fmt.Sprintf("department = $%d", argNum))
		args = append(args, filter.Department)
		argNum++
	}
	if filter.Location != "" {
		clauses = append(clauses, fmt.Sprintf("location = $%d", argNum))
		args = append(args, filter.Location)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"
	return query, args
}

// ListAnswerRows returns department and answers for every matching response.
func (db *DB) ListAnswerRows(ctx context.Context, filter ResponseFilter) ([]AnswerRow, error) {
	query, args := buildAnswerRowsQuery(filter)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var out []AnswerRow
	for rows.Next() {
		var row AnswerRow
		var raw []byte
		if err := rows.Scan(&row.Department, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		row.Answers, err = survey.DecodeStoredAnswers(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate responses: %w", err)
	}
	return out, nil
}

// DistinctDepartments returns every department seen, sorted.
func (db *DB) DistinctDepartments(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "department")
}

// DistinctLocations returns every location seen, sorted.
func (db *DB) DistinctLocations(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "location")
}

// distinct is only called with fixed column names, never user input.
func (db *DB) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT DISTINCT %[1]s FROM responses ORDER BY %[1]s`, column))
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %ss: %w", column, err)
	}
	return values, nil
}
