package pdfdoc

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"
)

// fixedWidth measures every rune as w points.
func fixedWidth(w float64) Measurer {
	return func(s string) float64 {
		return float64(len([]rune(s))) * w
	}
}

func TestLayoutWrapsGreedily(t *testing.T) {
	setup := PageSetup{Width: 120, Height: 200, Margin: 10, FontSize: 10, LineHeight: 10}
	// Content width is 100: ten runes at 10pt each.
	pages := Layout("aaa bbb ccc dddd", setup, fixedWidth(10))
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	var got []string
	for _, l := range pages[0].Lines {
		got = append(got, l.Text)
	}
	want := []string{"aaa bbb", "ccc dddd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
	if pages[0].Lines[0].Y != 10 || pages[0].Lines[1].Y != 20 {
		t.Errorf("baselines = %v, %v", pages[0].Lines[0].Y, pages[0].Lines[1].Y)
	}
}

func TestLayoutLongWordStaysOnOwnLine(t *testing.T) {
	setup := PageSetup{Width: 120, Height: 200, Margin: 10, FontSize: 10, LineHeight: 10}
	pages := Layout("a "+strings.Repeat("x", 30)+" b", setup, fixedWidth(10))
	var got []string
	for _, l := range pages[0].Lines {
		got = append(got, l.Text)
	}
	want := []string{"a", strings.Repeat("x", 30), "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestLayoutPageBreaks(t *testing.T) {
	// Bottom limit is 100-10-10 = 80; baselines 10..80 fit (8 lines), the
	// ninth starts a new page.
	setup := PageSetup{Width: 100, Height: 100, Margin: 10, FontSize: 10, LineHeight: 10}
	text := strings.TrimSuffix(strings.Repeat("line\n", 12), "\n")
	pages := Layout(text, setup, fixedWidth(1))
	if len(pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(pages))
	}
	if n := len(pages[0].Lines); n != 8 {
		t.Errorf("first page lines = %d, want 8", n)
	}
	if n := len(pages[1].Lines); n != 4 {
		t.Errorf("second page lines = %d, want 4", n)
	}
	if y := pages[1].Lines[0].Y; y != 10 {
		t.Errorf("second page starts at %v, want 10", y)
	}
}

func TestLayoutBlankLinesAdvance(t *testing.T) {
	pages := Layout("a\n\nb", A4, fixedWidth(5))
	lines := pages[0].Lines
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[1].Text != "" || math.Abs(lines[2].Y-(A4.Margin+2*A4.LineHeight)) > 1e-9 {
		t.Errorf("unexpected blank-line handling: %+v", lines)
	}
}

func TestLayoutNormalizesLineEndings(t *testing.T) {
	a := Layout("one\r\ntwo\tthree", A4, fixedWidth(5))
	b := Layout("one\ntwo    three", A4, fixedWidth(5))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("layouts differ:\n%+v\n%+v", a, b)
	}
}

func TestTextToPDFDeterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 400)
	first, err := TextToPDF(text, "report")
	if err != nil {
		t.Fatalf("TextToPDF: %v", err)
	}
	second, err := TextToPDF(text, "report")
	if err != nil {
		t.Fatalf("TextToPDF: %v", err)
	}
	if !bytes.HasPrefix(first, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if !bytes.Equal(first, second) {
		t.Errorf("identical input produced different documents")
	}
}

func TestWriterPageCount(t *testing.T) {
	w := NewWriter(A4)
	n := w.WriteText(strings.Repeat("row\n", 120))
	// 50..776.6 holds 48 baselines per page.
	if n != 3 || w.PageCount() != 3 {
		t.Errorf("pages = %d / %d, want 3", n, w.PageCount())
	}
	if _, err := w.Bytes(); err != nil {
		t.Fatalf("Bytes: %v", err)
	}
}
