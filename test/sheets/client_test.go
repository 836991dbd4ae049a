package sheets_test

import (
	"context"
	"os"
	"testing"

	"sale_counter_bot/internal/sheets"
)

// These tests talk to the real Sheets API and need a service account plus a
// spreadsheet the account can read. Without both they skip.
func liveCredentials(t *testing.T) []byte {
	t.Helper()
	path := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if path == "" {
		t.Skip("GOOGLE_SERVICE_ACCOUNT_FILE not set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read credentials: %v", err)
	}
	return data
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	client, err := sheets.NewClient(ctx, liveCredentials(t))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	if client == nil {
		t.Fatal("Client is nil")
	}
}

func TestReadSheet(t *testing.T) {
	spreadsheetID := os.Getenv("SALES_SHEETS_TEST_ID")
	if spreadsheetID == "" {
		t.Skip("SALES_SHEETS_TEST_ID not set")
	}

	ctx := context.Background()
	client, err := sheets.NewClient(ctx, liveCredentials(t))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	values, err := client.ReadSheet(ctx, spreadsheetID, "A1:Z100")
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	if values == nil {
		t.Fatal("Values is nil")
	}
}
