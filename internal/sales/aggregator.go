package sales

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"sale_counter_bot/internal/window"
)

// RowSource fetches the raw cell grid of one spreadsheet.
type RowSource interface {
	Rows(ctx context.Context, sheetID string) ([][]string, error)
}

// Result is the outcome of one aggregation run. PerSheet holds only sheets
// with a positive subtotal; SheetOrder lists its keys in configured sheet
// order so output stays stable. Err is set instead of failing the run when
// the sheet backend is not configured at all (missing credentials or an
// empty sheet list).
type Result struct {
	Total      decimal.Decimal
	PerSheet   map[string]decimal.Decimal
	SheetOrder []string
	Report     Report
	Err        string
}

// Aggregator sums a person's sales across a fixed list of spreadsheets.
type Aggregator struct {
	source   RowSource
	sheetIDs []string
	reason   string
}

// NewAggregator builds an aggregator over the given source and sheet IDs.
func NewAggregator(source RowSource, sheetIDs []string) *Aggregator {
	return &Aggregator{source: source, sheetIDs: sheetIDs}
}

// NewUnconfigured returns an aggregator that reports reason instead of
// reading anything, so the bot keeps answering commands without a backend.
func NewUnconfigured(reason string) *Aggregator {
	return &Aggregator{reason: reason}
}

// Collect sums person's sales inside bounds across all configured sheets.
// Bounds are widened to whole days first. A sheet that fails to fetch is
// logged and skipped; its rows simply don't appear in the counters. With no
// sheets configured the result carries Err, same as a missing service
// account, so the caller can tell a setup gap from a zero-sales window.
func (a *Aggregator) Collect(ctx context.Context, person string, bounds window.Bounds) Result {
	if a.reason != "" {
		return unconfigured(a.reason)
	}
	if len(a.sheetIDs) == 0 {
		return unconfigured("Google Sheets not configured")
	}

	bounds = bounds.Normalize()
	log.Info().
		Str("person", person).
		Str("range", bounds.String()).
		Msg("Collecting sales")

	stats := &Stats{}
	total := decimal.Zero
	perSheet := make(map[string]decimal.Decimal)
	var order []string

	for _, sheetID := range a.sheetIDs {
		tag := ShortID(sheetID)
		rows, err := a.source.Rows(ctx, sheetID)
		if err != nil {
			log.Error().
				Err(err).
				Str("sheet", tag).
				Msg("Failed to fetch sheet data")
			continue
		}
		if len(rows) == 0 {
			log.Warn().Str("sheet", tag).Msg("No data found in sheet")
			continue
		}

		matched := MatchRows(tag, rows, LayoutFor(sheetID), person, bounds, stats)
		subtotal := decimal.Zero
		for _, s := range matched {
			subtotal = subtotal.Add(s.Amount)
		}
		if subtotal.IsPositive() {
			perSheet[sheetID] = subtotal
			order = append(order, sheetID)
			total = total.Add(subtotal)
			log.Info().
				Str("sheet", tag).
				Int("sales", len(matched)).
				Str("subtotal", subtotal.StringFixed(2)).
				Msg("Sheet subtotal")
		} else {
			log.Info().Str("sheet", tag).Msg("No sales found in date range")
		}
	}

	log.Info().
		Str("total", total.StringFixed(2)).
		Int("matching_sales", stats.MatchingSales).
		Int("sheets", len(perSheet)).
		Msg("Collection complete")

	return Result{
		Total:      total,
		PerSheet:   perSheet,
		SheetOrder: order,
		Report: Report{
			TotalRows:     stats.TotalRows,
			NameMatches:   stats.NameMatches,
			MatchingSales: stats.MatchingSales,
			DateRange:     bounds.String(),
			SampleDates:   stats.SampleDates(),
		},
	}
}

func unconfigured(reason string) Result {
	return Result{
		Total:    decimal.Zero,
		PerSheet: map[string]decimal.Decimal{},
		Err:      reason,
	}
}

// ShortID trims a spreadsheet ID to its last 8 characters for log lines and
// chat output.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
