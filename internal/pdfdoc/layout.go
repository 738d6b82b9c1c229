// Package pdfdoc holds the paginated-document side of the engine: the text
// layout, a writer on top of gofpdf and the document-container codec used to
// read existing PDFs.
package pdfdoc

import "strings"

// PageSetup fixes the geometry of generated pages. All values are points.
type PageSetup struct {
	Width      float64
	Height     float64
	Margin     float64
	FontSize   float64
	LineHeight float64
}

// A4 is the default setup: 595x842pt, 50pt margins, 11pt text, 1.4 leading.
var A4 = PageSetup{
	Width:      595,
	Height:     842,
	Margin:     50,
	FontSize:   11,
	LineHeight: 11 * 1.4,
}

// ContentWidth is the horizontal space available to a line.
func (s PageSetup) ContentWidth() float64 {
	return s.Width - 2*s.Margin
}

// Measurer returns the rendered width of s in points.
type Measurer func(s string) float64

// Line is one committed line. Y is the baseline measured from the top edge.
type Line struct {
	Text string
	X    float64
	Y    float64
}

// Page is an ordered list of lines.
type Page struct {
	Lines []Line
}

// Layout wraps text into pages. Each input line is packed greedily word by
// word: a word moves to the next line when appending it would exceed the
// content width and the current line is not empty. A word wider than the
// page stays on its own line. Lines are committed top-down; a new page
// starts whenever the next baseline would fall inside the bottom margin
// plus one line. The result depends only on text, setup and measure.
func Layout(text string, setup PageSetup, measure Measurer) []Page {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")

	maxWidth := setup.ContentWidth()
	bottom := setup.Height - setup.Margin - setup.LineHeight

	pages := []Page{{}}
	y := setup.Margin
	commit := func(s string) {
		if y > bottom {
			pages = append(pages, Page{})
			y = setup.Margin
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, Line{Text: s, X: setup.Margin, Y: y})
		y += setup.LineHeight
	}

	for _, raw := range strings.Split(text, "\n") {
		current := ""
		for _, word := range strings.Split(raw, " ") {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if current != "" && measure(candidate) > maxWidth {
				commit(current)
				current = word
				continue
			}
			current = candidate
		}
		commit(current)
	}
	return pages
}
