package main

import (
	"fmt"
	"strings"
	"time"

	"sale_counter_bot/internal/dateparse"
	"sale_counter_bot/internal/sales"
)

func welcomeMessage(userName string) string {
	return "🎉 Welcome to SaleCounter Bot!\n\n" +
		"Commands:\n" +
		"/setname <Your Sheet Name> - Set your name as it appears in sheets\n" +
		"/mysales - Check your sales for current window\n" +
		"/week - Same as /mysales\n" +
		"/first, /second, /third - Check a specific sales window\n" +
		"/debug - Show configuration and sample data\n\n" +
		"Current user: " + userName
}

// salesMessage renders an aggregation result. A positive total gets the
// breakdown view; zero totals get the diagnostic view so users can see why
// nothing matched.
func salesMessage(userName string, res sales.Result, descriptor string) string {
	if res.Err != "" {
		return fmt.Sprintf("❌ Error: %s\n\nPlease contact the bot administrator.", res.Err)
	}

	if res.Total.IsPositive() {
		var b strings.Builder
		fmt.Fprintf(&b, "💰 %s's sales for %s:\n\n", userName, descriptor)
		fmt.Fprintf(&b, "**Total: $%s**\n\n", res.Total.StringFixed(2))
		if len(res.SheetOrder) > 0 {
			b.WriteString("Breakdown by sheet:\n")
			for _, sheetID := range res.SheetOrder {
				fmt.Fprintf(&b, "• Sheet ...%s: $%s\n", sales.ShortID(sheetID), res.PerSheet[sheetID].StringFixed(2))
			}
		}
		fmt.Fprintf(&b, "\n📊 Debug: %d sales found", res.Report.MatchingSales)
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s: No sales found for %s\n\n", userName, descriptor)
	b.WriteString("Debug info:\n")
	fmt.Fprintf(&b, "• Total rows checked: %d\n", res.Report.TotalRows)
	fmt.Fprintf(&b, "• Rows with your name: %d\n", res.Report.NameMatches)
	fmt.Fprintf(&b, "• Date range: %s\n", res.Report.DateRange)
	fmt.Fprintf(&b, "• Sample dates found: %s", res.Report.SampleDates)
	return b.String()
}

func checkingMessage(what, userName string) string {
	return fmt.Sprintf("🔍 Checking %s for %s...", what, userName)
}

func setNameUsageMessage(currentName string) string {
	return fmt.Sprintf("Current name: %s\n\n", currentName) +
		"Usage: /setname <name as it appears in the sheet>\n" +
		"Example: /setname John Smith"
}

func nameSavedMessage(name string) string {
	return fmt.Sprintf(`✅ Saved! Your sheet name is now "%s".`, name)
}

func testDateMessage(raw string, attempts []dateparse.Attempt, cascade time.Time, ok bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Testing date string: '%s'\n\n", raw)
	for _, a := range attempts {
		if a.OK {
			fmt.Fprintf(&b, "✓ Format '%s': %s\n", a.Layout, a.Result.Format("2006-01-02"))
		} else {
			fmt.Fprintf(&b, "✗ Format '%s': Failed\n", a.Layout)
		}
	}
	if ok {
		fmt.Fprintf(&b, "\n✓ Fallback parser: %s", cascade.Format("2006-01-02"))
	} else {
		b.WriteString("\n✗ Fallback parser: Failed")
	}
	return b.String()
}

const maxCellChars = 100

// showRowMessage dumps one row's cells, one line per column, each cell capped
// at maxCellChars characters.
func showRowMessage(sheetNum, rowNum int, row []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Sheet %d, Row %d:\n\n", sheetNum, rowNum)
	for i, cell := range row {
		fmt.Fprintf(&b, "Column %d: %s\n", i, truncateCell(cell))
	}
	return b.String()
}

func truncateCell(cell string) string {
	runes := []rune(cell)
	if len(runes) <= maxCellChars {
		return cell
	}
	return string(runes[:maxCellChars])
}

// debugMessage summarizes the live configuration: resolved user, active
// window, and each sheet's column layout.
func debugMessage(userName string, telegramID int64, now time.Time, windowDays int, since time.Time, sheetIDs []string) string {
	var b strings.Builder
	b.WriteString("🔧 Debug Information:\n\n")
	fmt.Fprintf(&b, "User: %s\n", userName)
	fmt.Fprintf(&b, "Telegram ID: %d\n", telegramID)
	fmt.Fprintf(&b, "Current date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Window: %d days (since %s)\n", windowDays, since.Format("2006-01-02"))
	fmt.Fprintf(&b, "Sheets configured: %d\n\n", len(sheetIDs))

	b.WriteString("Sheet Configurations:\n")
	for i, sheetID := range sheetIDs {
		layout := sales.LayoutFor(sheetID)
		fmt.Fprintf(&b, "%d. ...%s: name=col%d, date=col%d, sale=col%d\n",
			i+1, sales.ShortID(sheetID), layout.NameCol, layout.DateCol, layout.AmountCol)
	}
	return b.String()
}

// sampleRowMessage renders the spot-check row dump for /debug.
func sampleRowMessage(sheetNum int, sheetID string, rowNum int, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n📋 SHEET %d (...%s) - Row %d:\n\n", sheetNum, sales.ShortID(sheetID), rowNum)
	if rowNum < 1 || rowNum > len(rows) {
		fmt.Fprintf(&b, "Row %d not found", rowNum)
		return b.String()
	}
	row := rows[rowNum-1]
	limit := len(row)
	if limit > 15 {
		limit = 15
	}
	for i := 0; i < limit; i++ {
		fmt.Fprintf(&b, "col%d: %s\n", i, row[i])
	}
	return b.String()
}
