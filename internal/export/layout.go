package export

import "strings"

const (
	// LetterWidth is the width of a US Letter page in points.
	LetterWidth = 612.0
	// LetterHeight is the height of a US Letter page in points.
	LetterHeight = 792.0

	defaultMargin     = 40.0
	defaultFontSize   = 10.0
	defaultLineHeight = 12.0
)

// Layout holds the fixed page geometry of PDF exports. All values are in points.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	FontSize   float64
	LineHeight float64
	// FontPath optionally names a UTF-8 TrueType font. Empty selects the built-in Courier.
	FontPath string
}

// DefaultLayout returns Letter pages with 40pt margins, a 10pt font and a 12pt line pitch.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  LetterWidth,
		PageHeight: LetterHeight,
		Margin:     defaultMargin,
		FontSize:   defaultFontSize,
		LineHeight: defaultLineHeight,
	}
}

// normalized replaces unset or invalid geometry with defaults.
func (layout Layout) normalized() Layout {
	defaults := DefaultLayout()
	if layout.PageWidth <= 0 || layout.PageHeight <= 0 {
		layout.PageWidth = defaults.PageWidth
		layout.PageHeight = defaults.PageHeight
	}
	if layout.Margin < 0 || layout.Margin*2 >= layout.PageHeight {
		layout.Margin = defaults.Margin
	}
	if layout.FontSize <= 0 {
		layout.FontSize = defaults.FontSize
	}
	if layout.LineHeight <= 0 {
		layout.LineHeight = defaults.LineHeight
	}
	return layout
}

// LinesPerPage reports how many lines fit between the top and bottom margins.
// The first baseline sits on the top margin and a further line is placed only
// while its baseline stays above the bottom margin.
func (layout Layout) LinesPerPage() int {
	layout = layout.normalized()
	usableHeight := layout.PageHeight - 2*layout.Margin
	return int(usableHeight/layout.LineHeight) + 1
}

// Paginate splits lines into pages. An empty input still yields one empty page.
func (layout Layout) Paginate(lines []string) [][]string {
	perPage := layout.LinesPerPage()
	if len(lines) == 0 {
		return [][]string{{}}
	}
	pages := make([][]string, 0, (len(lines)+perPage-1)/perPage)
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}

// SplitLines breaks a rendering into lines. A trailing line break does not
// produce a trailing empty line and CRLF is treated as LF.
func SplitLines(rendering string) []string {
	normalized := strings.ReplaceAll(rendering, "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}
