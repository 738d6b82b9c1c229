package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// numberedDoc writes n lines ("Line 1".."Line n") through TextToPDF.
func numberedDoc(t *testing.T, n int) []byte {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "Line %d\n", i)
	}
	data, err := TextToPDF(sb.String(), "numbered")
	if err != nil {
		t.Fatalf("TextToPDF: %v", err)
	}
	return data
}

func pageCount(t *testing.T, c Codec, data []byte) int {
	t.Helper()
	n, err := c.PageCount(context.Background(), data)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	return n
}

func skipUnavailable(t *testing.T, err error) {
	t.Helper()
	if errors.Is(err, ErrUnavailable) {
		t.Skip("not supported by this build's codec")
	}
}

func TestCodecReadsGeneratedDocument(t *testing.T) {
	c := NewCodec()
	doc := numberedDoc(t, 120)

	if n := pageCount(t, c, doc); n != 3 {
		t.Fatalf("PageCount = %d, want 3", n)
	}

	pages, err := c.ExtractText(context.Background(), doc)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if len(pages) != 3 {
		t.Errorf("ExtractText returned %d pages, want 3", len(pages))
	}
	text := strings.Join(pages, "\n")
	for _, want := range []string{"Line", "120"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q", want)
		}
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	if _, err := NewCodec().PageCount(context.Background(), []byte("not a pdf")); err == nil {
		t.Error("PageCount accepted garbage")
	}
}

func TestCodecSplitPages(t *testing.T) {
	c := NewCodec()
	parts, err := c.SplitPages(context.Background(), numberedDoc(t, 120))
	skipUnavailable(t, err)
	if err != nil {
		t.Fatalf("SplitPages: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("got %d documents, want 3", len(parts))
	}
	for i, part := range parts {
		if n := pageCount(t, c, part); n != 1 {
			t.Errorf("part %d has %d pages, want 1", i, n)
		}
	}
}

func TestCodecMerge(t *testing.T) {
	c := NewCodec()
	doc := numberedDoc(t, 120)
	merged, err := c.Merge(context.Background(), [][]byte{doc, doc})
	skipUnavailable(t, err)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if n := pageCount(t, c, merged); n != 6 {
		t.Errorf("merged PageCount = %d, want 6", n)
	}
}

func TestCodecRenderPage(t *testing.T) {
	img, err := NewCodec().RenderPage(context.Background(), numberedDoc(t, 10), 0, 1)
	skipUnavailable(t, err)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if img == nil {
		t.Fatal("RenderPage returned no image")
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		t.Errorf("bounds = %v", b)
	}
}

func TestImageToPDFSinglePage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.NRGBA{R: 30, G: 140, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	doc, err := ImageToPDF(buf.Bytes(), 40, 30)
	if err != nil {
		t.Fatalf("ImageToPDF: %v", err)
	}
	if n := pageCount(t, NewCodec(), doc); n != 1 {
		t.Errorf("PageCount = %d, want 1", n)
	}
}
