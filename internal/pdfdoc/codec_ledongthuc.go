//go:build nopdfium

package pdfdoc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReaderCodec is the pure-Go codec used when PDFium is compiled out. It can
// count pages and extract text; rendering and page surgery report
// ErrUnavailable.
type ReaderCodec struct{}

// NewCodec returns the codec for this build.
func NewCodec() Codec {
	return ReaderCodec{}
}

func open(data []byte) (*pdf.Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	return r, nil
}

func (ReaderCodec) PageCount(ctx context.Context, data []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r, err := open(data)
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

func (ReaderCodec) ExtractText(ctx context.Context, data []byte) ([]string, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}
	n := r.NumPage()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			out = append(out, "")
			continue
		}
		out = append(out, pageText(page))
	}
	return out, nil
}

// pageText joins the page's rows, inserting a space where the reader
// reports an empty run between words.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		text, _ := page.GetPlainText(nil)
		return strings.TrimSpace(text)
	}
	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		gap := false
		for _, word := range row.Content {
			if word.S == "" {
				gap = true
				continue
			}
			if gap && line.Len() > 0 && !strings.HasSuffix(line.String(), " ") {
				line.WriteString(" ")
			}
			line.WriteString(word.S)
			gap = false
		}
		if s := strings.TrimSpace(line.String()); s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func (ReaderCodec) RenderPage(context.Context, []byte, int, float64) (image.Image, error) {
	return nil, ErrUnavailable
}

func (ReaderCodec) Merge(context.Context, [][]byte) ([]byte, error) {
	return nil, ErrUnavailable
}

func (ReaderCodec) SplitPages(context.Context, []byte) ([][]byte, error) {
	return nil, ErrUnavailable
}
