// Package sheets mirrors contact submissions into a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type Appender struct {
	svc           *gsheets.Service
	spreadsheetID string
	writeRange    string
}

// NewAppender builds a Sheets client. Extra options (endpoint, http client)
// are appended after the credentials option.
func NewAppender(ctx context.Context, spreadsheetID, writeRange, credsPath string, extra ...option.ClientOption) (*Appender, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets spreadsheet id is required")
	}
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if strings.TrimSpace(credsPath) != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	opts = append(opts, extra...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if writeRange == "" {
		writeRange = "Sheet1!A:F"
	}
	return &Appender{svc: svc, spreadsheetID: spreadsheetID, writeRange: writeRange}, nil
}

// AppendRow adds one row below the last filled row of the range.
func (a *Appender) AppendRow(ctx context.Context, values []any) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{values}}
	_, err := a.svc.Spreadsheets.Values.Append(a.spreadsheetID, a.writeRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
