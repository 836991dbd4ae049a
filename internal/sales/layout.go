package sales

// Layout describes where a spreadsheet keeps its name, date and amount
// columns and which date layouts its rows use. Layouts are tried against the
// raw cell text before the generic cascade, so suffixed day forms like "6th"
// match the entries that spell the suffix out.
type Layout struct {
	NameCol     int
	DateCol     int
	AmountCol   int
	DateLayouts []string
}

// maxCol is the highest column index the layout reads; shorter rows are
// counted but never matched.
func (l Layout) maxCol() int {
	m := l.NameCol
	if l.DateCol > m {
		m = l.DateCol
	}
	if l.AmountCol > m {
		m = l.AmountCol
	}
	return m
}

// DefaultLayout covers spreadsheets without a dedicated entry in Layouts.
var DefaultLayout = Layout{
	NameCol:   0,
	DateCol:   3,
	AmountCol: 5,
	DateLayouts: []string{
		"Jan 2, 2006, 3:04:05 PM",
		"January 2, 2006",
		"2006-01-02",
	},
}

// Layouts maps spreadsheet IDs to their column and date-format layouts.
var Layouts = map[string]Layout{
	"1MlIztcbS1hR-gMnT9aOtH5LMALcIOLCUL08o1SMsePg": {
		NameCol:   0,
		DateCol:   3,
		AmountCol: 5,
		DateLayouts: []string{
			"Jan 2, 2006, 3:04:05 PM",
			"January 2, 2006, 3:04:05 PM",
			"2006-01-02",
		},
	},
	"1Q0VkLwxwKTc_-t17Ij-t_rI-wtwdLE37FyUjkznCYrI": {
		NameCol:   0,
		DateCol:   2,
		AmountCol: 4,
		// Rows look like "August 6th, 2025 at 5:52 PM"; one layout per
		// ordinal suffix because the suffix is literal text.
		DateLayouts: []string{
			"January 2th, 2006 at 3:04 PM",
			"January 2st, 2006 at 3:04 PM",
			"January 2nd, 2006 at 3:04 PM",
			"January 2rd, 2006 at 3:04 PM",
		},
	},
	"1Eqtc8utEzUAdknJI_-u1AGg1SxBH3T78JpVwkpIQZ2Q": {
		NameCol:   0,
		DateCol:   3,
		AmountCol: 5,
		DateLayouts: []string{
			"2006-01-02",
			"Jan 2, 2006",
			"January 2, 2006",
		},
	},
}

// LayoutFor returns the layout registered for sheetID, or DefaultLayout.
func LayoutFor(sheetID string) Layout {
	if l, ok := Layouts[sheetID]; ok {
		return l
	}
	return DefaultLayout
}
