package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"sale_counter_bot/internal/dateparse"
	"sale_counter_bot/internal/window"
)

// Sale is one matched spreadsheet row.
type Sale struct {
	Row    int // 1-based sheet row number
	Date   time.Time
	Amount decimal.Decimal
}

// MatchRows scans one sheet's cell grid for rows whose name column equals
// person (case-insensitive, whitespace-trimmed) and whose date parses inside
// bounds. The first row is treated as a header. Counters accumulate into
// stats so a single report can cover a whole multi-sheet run.
func MatchRows(tag string, rows [][]string, layout Layout, person string, bounds window.Bounds, stats *Stats) []Sale {
	if len(rows) == 0 {
		return nil
	}
	log.Info().
		Str("sheet", tag).
		Int("data_rows", len(rows)-1).
		Msg("Processing sheet rows")

	target := strings.ToLower(strings.TrimSpace(person))
	var sales []Sale
	for i, row := range rows[1:] {
		rowNum := i + 2
		stats.TotalRows++

		if len(row) <= layout.maxCol() {
			log.Debug().
				Str("sheet", tag).
				Int("row", rowNum).
				Int("columns", len(row)).
				Msg("Skipping row with insufficient columns")
			continue
		}
		name := strings.TrimSpace(row[layout.NameCol])
		dateStr := strings.TrimSpace(row[layout.DateCol])
		amountStr := strings.TrimSpace(row[layout.AmountCol])

		if strings.ToLower(name) != target {
			continue
		}
		stats.NameMatches++
		log.Debug().
			Str("sheet", tag).
			Int("row", rowNum).
			Str("name", name).
			Str("date", dateStr).
			Msg("Name match")

		// Sheet-specific layouts see the raw text; the generic parser
		// normalizes suffixes and timezones on its own.
		saleDate, ok := dateparse.TryLayouts(dateStr, layout.DateLayouts)
		if !ok {
			saleDate, ok = dateparse.Parse(dateStr)
		}
		if !ok {
			log.Warn().
				Str("sheet", tag).
				Int("row", rowNum).
				Str("date", dateStr).
				Msg("Failed to parse date with any format")
			continue
		}
		stats.addSample(saleDate)

		if !bounds.Contains(saleDate) {
			log.Debug().
				Str("sheet", tag).
				Int("row", rowNum).
				Str("date", saleDate.Format("2006-01-02")).
				Msg("Date outside window")
			continue
		}

		amount, err := ParseAmount(amountStr)
		if err != nil {
			log.Warn().
				Str("sheet", tag).
				Int("row", rowNum).
				Str("amount", amountStr).
				Err(err).
				Msg("Could not parse sale amount")
			continue
		}
		stats.MatchingSales++
		sales = append(sales, Sale{Row: rowNum, Date: saleDate, Amount: amount})
		log.Debug().
			Str("sheet", tag).
			Int("row", rowNum).
			Str("date", saleDate.Format("2006-01-02")).
			Str("amount", amount.StringFixed(2)).
			Msg("Sale matched")
	}
	return sales
}

// ParseAmount converts a money cell to a decimal. Dollar signs and thousands
// separators are stripped; an empty cell is a zero-amount sale.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", raw, err)
	}
	return d, nil
}
