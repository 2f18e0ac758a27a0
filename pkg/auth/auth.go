package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsHTTPClient builds an HTTP client authenticated as the service
// account in credentialsFile, scoped to spreadsheet access. The returned
// client refreshes its token transparently.
func NewSheetsHTTPClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file %s: %w", credentialsFile, err)
	}

	cfg, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account file to config: %w", err)
	}

	return cfg.Client(ctx), nil
}
