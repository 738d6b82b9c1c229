package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 150},
		{"blue", 0, 0, 255, 29},
		{"white", 255, 255, 255, 255},
		{"black", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luma(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Luma = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	img := solid(2, 2, color.NRGBA{R: 255, A: 128})
	out := Grayscale(img)
	got := out.NRGBAAt(1, 1)
	if got.R != 76 || got.G != 76 || got.B != 76 || got.A != 128 {
		t.Errorf("pixel = %+v", got)
	}
}

func TestEncodeDecodeFormats(t *testing.T) {
	img := solid(8, 6, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	for _, format := range []string{"png", "jpg", "gif", "bmp", "tiff", "webp", "ico"} {
		t.Run(format, func(t *testing.T) {
			data, err := EncodeBytes(img, format, 92)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			back, _, err := Decode(data, false)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := back.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("bounds = %v", b)
			}
		})
	}
}

func TestFlattenOnWhite(t *testing.T) {
	out := Flatten(solid(1, 1, color.NRGBA{}), color.White)
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel flattened to %+v", got)
	}
}

func TestFitShrinksLargeIcons(t *testing.T) {
	img := solid(600, 300, color.Black)
	data, err := EncodeBytes(img, "ico", 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, _, err := Decode(data, false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := back.Bounds(); b.Dx() != 256 || b.Dy() != 128 {
		t.Errorf("bounds = %v, want 256x128", b)
	}
}

func TestDecodeSVG(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20">` +
		`<rect x="0" y="0" width="40" height="20" fill="#ff0000"/></svg>`
	img, format, err := Decode([]byte(doc), true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "svg" {
		t.Errorf("format = %q", format)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("bounds = %v", b)
	}
	r, _, _, a := img.At(20, 10).RGBA()
	if r>>8 < 200 || a>>8 < 200 {
		t.Errorf("center pixel not filled red")
	}
}

func TestEncodeSVGEmbedsPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSVG(&buf, solid(3, 4, color.Black)); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.Contains(s, `width="3" height="4"`) || !strings.Contains(s, "data:image/png;base64,") {
		t.Errorf("unexpected svg: %.120s", s)
	}
}

func TestDecodeUnknown(t *testing.T) {
	if _, _, err := Decode([]byte("not an image"), false); err != ErrUnknownFormat {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(1, 1, color.White)); err != nil {
		t.Fatal(err)
	}
	if _, format, err := Decode(buf.Bytes(), false); err != nil || format != "png" {
		t.Errorf("format = %q, err = %v", format, err)
	}
}

func TestCard(t *testing.T) {
	img := Card(100, 80, 2, "PDF: a.pdf", "3 page(s)")
	if got := img.Bounds().Size(); got != image.Pt(200, 160) {
		t.Fatalf("size = %v, want 200x160", got)
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner = %v, want white", c)
	}
	if c := img.RGBAAt(20, 40); c != cardBorder {
		t.Errorf("border pixel = %v, want %v", c, cardBorder)
	}
}
