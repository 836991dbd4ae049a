package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"

	"sale_counter_bot/internal/retry"
)

// readRange spans every column the layouts can address.
const readRange = "A:Z"

type valuesReader interface {
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
}

// Source feeds spreadsheet rows to the aggregator, retrying transient API
// failures and flattening cells to trimmed strings.
type Source struct {
	client valuesReader
	cfg    retry.Config
}

// NewSource wraps client with the given retry policy.
func NewSource(client *Client, cfg retry.Config) *Source {
	return &Source{client: client, cfg: cfg}
}

// Rows fetches the full cell grid of one spreadsheet.
func (s *Source) Rows(ctx context.Context, sheetID string) ([][]string, error) {
	values, err := retry.Do(ctx, s.cfg, func(ctx context.Context) ([][]interface{}, error) {
		return s.client.ReadSheet(ctx, sheetID, readRange)
	})
	if err != nil {
		// Surface the HTTP status when the API itself said no; a 403 or
		// 404 points at sharing or a bad sheet ID, not a flaky network.
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("failed to fetch rows (HTTP %d): %w", apiErr.Code, err)
		}
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	log.Debug().
		Int("rows", len(values)).
		Msg("Retrieved sheet data")

	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = toStrings(row)
	}
	return rows, nil
}

// toStrings flattens one row of sheet cells to trimmed strings. Numeric
// cells render the way the API would show them; nil cells become empty.
func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
