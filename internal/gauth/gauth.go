// Package gauth builds the long-lived Drive and Sheets clients from a
// pre-authorized user token. Token acquisition and refresh happen outside
// this process; we only consume the blob handed to us at startup.
package gauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveFileScope,
}

// NewServices authenticates once from an authorized-user token JSON blob
// and returns Drive and Sheets services. Both are safe for concurrent use
// and are meant to live for the whole process.
func NewServices(ctx context.Context, tokenJSON []byte) (*drive.Service, *sheets.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, tokenJSON, scopes...)
	if err != nil {
		return nil, nil, fmt.Errorf("gauth: parse token: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, nil, fmt.Errorf("gauth: drive service: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, nil, fmt.Errorf("gauth: sheets service: %w", err)
	}

	return driveSvc, sheetsSvc, nil
}
