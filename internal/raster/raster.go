// Package raster decodes, adjusts and re-encodes bitmap images.
package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/sergeymakinen/go-ico"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned by Decode when no registered decoder
// recognizes the data.
var ErrUnknownFormat = errors.New("raster: unknown image format")

// Default SVG canvas when the document declares no size.
const (
	defaultSVGWidth  = 300
	defaultSVGHeight = 150
	maxIconSide      = 256
)

// Decode reads any supported bitmap, or an SVG document when svg is set.
// The returned name is the detected format ("png", "jpeg", "svg", ...).
func Decode(data []byte, svg bool) (image.Image, string, error) {
	if svg {
		img, err := decodeSVG(data)
		return img, "svg", err
	}
	// Lossy WebP is handled by x/image; the native decoder covers the
	// lossless and extended variants it rejects.
	if isWebP(data) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			img, err = nativewebp.Decode(bytes.NewReader(data))
		}
		if err != nil {
			return nil, "", fmt.Errorf("decode webp: %w", err)
		}
		return img, "webp", nil
	}
	if isICO(data) {
		img, err := ico.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decode ico: %w", err)
		}
		return img, "ico", nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrUnknownFormat
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", format, err)
	}
	return img, format, nil
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

func isICO(data []byte) bool {
	return len(data) >= 6 && data[0] == 0 && data[1] == 0 && data[2] == 1 && data[3] == 0
}

func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		w, h = defaultSVGWidth, defaultSVGHeight
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// Flatten composites img over an opaque background.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	xdraw.Draw(out, out.Bounds(), img, b.Min, xdraw.Over)
	return out
}

// Grayscale replaces every pixel with its luma
// round(0.299R + 0.587G + 0.114B), keeping alpha.
func Grayscale(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			g := Luma(c.R, c.G, c.B)
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{R: g, G: g, B: g, A: c.A})
		}
	}
	return out
}

// Luma is the weighted gray level of one pixel.
func Luma(r, g, b uint8) uint8 {
	return uint8(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}

// Fit scales img down so neither side exceeds the limits. Images already
// inside the box are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	ratio := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*ratio)))
	h := max(1, int(math.Round(float64(b.Dy())*ratio)))
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Over, nil)
	return out
}

// Encodable reports whether Encode can write format.
func Encodable(format string) bool {
	switch normalize(format) {
	case "png", "jpeg", "gif", "bmp", "tiff", "webp", "ico", "svg":
		return true
	}
	return false
}

func normalize(format string) string {
	switch f := strings.ToLower(format); f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return f
	}
}

// Encode writes img as format. Formats without an alpha channel (jpeg, bmp)
// are flattened on white first. quality applies to jpeg only.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch normalize(format) {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, Flatten(img, color.White), &jpeg.Options{Quality: quality})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, Flatten(img, color.White))
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "ico":
		return ico.Encode(w, Fit(img, maxIconSide, maxIconSide))
	case "svg":
		return EncodeSVG(w, img)
	default:
		return fmt.Errorf("raster: cannot encode %q", format)
	}
}

// EncodeSVG wraps img, as an embedded PNG, in an SVG document of the same
// pixel size.
func EncodeSVG(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	_, err := fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\">\n"+
		"  <image href=\"data:image/png;base64,%s\" width=\"%d\" height=\"%d\"/>\n</svg>",
		b.Dx(), b.Dy(), base64.StdEncoding.EncodeToString(buf.Bytes()), b.Dx(), b.Dy())
	return err
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
