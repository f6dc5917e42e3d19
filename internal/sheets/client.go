// Package sheets mirrors accepted survey submissions into a Google Sheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Appender appends one row to a spreadsheet.
type Appender interface {
	Append(ctx context.Context, row []any) error
}

// Client appends rows through the Sheets v4 API
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
}

// NewClient creates a Sheets client authenticated with service-account JSON.
func NewClient(ctx context.Context, credentialsJSON []byte, spreadsheetID, appendRange string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
	}, nil
}

// Append adds row after the last row of the configured range.
func (c *Client) Append(ctx context.Context, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.appendRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", c.appendRange, err)
	}
	return nil
}
