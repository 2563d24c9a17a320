// Package sheets appends submission rows to the spreadsheet ledger.
package sheets

import (
	"context"

	gsheets "google.golang.org/api/sheets/v4"
)

// Ledger appends rows to one tab of one spreadsheet. Values are written
// RAW: link cells must stay literal text, never formula-evaluated.
type Ledger struct {
	svc           *gsheets.Service
	spreadsheetID string
	appendRange   string
}

func NewLedger(svc *gsheets.Service, spreadsheetID, appendRange string) *Ledger {
	return &Ledger{svc: svc, spreadsheetID: spreadsheetID, appendRange: appendRange}
}

// Append writes exactly one row below the current data in the target range.
func (l *Ledger) Append(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, l.appendRange, &gsheets.ValueRange{
			Values: [][]interface{}{values},
		}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
