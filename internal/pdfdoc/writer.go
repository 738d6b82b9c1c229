package pdfdoc

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// stableDate is stamped on every generated document so identical input
// yields identical bytes.
var stableDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Writer builds a new PDF document.
type Writer struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	setup PageSetup
	imgs  int
}

// NewWriter starts an empty document using setup for text pages.
func NewWriter(setup PageSetup) *Writer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: setup.Width, Ht: setup.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(stableDate)
	pdf.SetModificationDate(stableDate)
	pdf.SetCatalogSort(true)
	pdf.SetFont("Helvetica", "", setup.FontSize)
	pdf.SetTextColor(38, 38, 38)

	return &Writer{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		setup: setup,
	}
}

// SetTitle records the document title in the info dictionary.
func (w *Writer) SetTitle(title string) {
	w.pdf.SetTitle(title, true)
}

// Measure returns the width of s in the body font.
func (w *Writer) Measure(s string) float64 {
	return w.pdf.GetStringWidth(w.tr(s))
}

// WriteText lays text out with Layout and draws every page. It returns the
// number of pages added.
func (w *Writer) WriteText(text string) int {
	pages := Layout(text, w.setup, w.Measure)
	for _, page := range pages {
		w.pdf.AddPage()
		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}
			w.pdf.Text(line.X, line.Y, w.tr(line.Text))
		}
	}
	return len(pages)
}

// AddImagePage adds a page sized to hold a PNG of the given pixel size,
// scaled down to fit the text page and surrounded by a 20pt border.
func (w *Writer) AddImagePage(png []byte, width, height int) {
	fitW, fitH := float64(width), float64(height)
	if fitW > w.setup.Width || fitH > w.setup.Height {
		ratio := min(w.setup.Width/fitW, w.setup.Height/fitH)
		fitW *= ratio
		fitH *= ratio
	}

	w.imgs++
	name := fmt.Sprintf("img%d", w.imgs)
	opts := gofpdf.ImageOptions{ImageType: "png"}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: fitW + 40, Ht: fitH + 40})
	w.pdf.ImageOptions(name, 20, 20, fitW, fitH, false, opts, 0, "")
}

// PageCount returns the number of pages added so far.
func (w *Writer) PageCount() int {
	return w.pdf.PageCount()
}

// Bytes finishes the document.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// TextToPDF renders text as an A4 paginated document.
func TextToPDF(text, title string) ([]byte, error) {
	w := NewWriter(A4)
	if title != "" {
		w.SetTitle(title)
	}
	w.WriteText(text)
	return w.Bytes()
}

// ImageToPDF wraps one PNG in a single-page document.
func ImageToPDF(png []byte, width, height int) ([]byte, error) {
	w := NewWriter(A4)
	w.AddImagePage(png, width, height)
	return w.Bytes()
}
