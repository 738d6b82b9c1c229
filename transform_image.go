package convertflow

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"

	"github.com/nicholasgasior/convertflow-go/internal/pdfdoc"
	"github.com/nicholasgasior/convertflow-go/internal/raster"
)

// undecodableImages have no decoder in the raster layer and always go to
// the fallback.
var undecodableImages = map[string]bool{"heic": true, "heif": true, "avif": true}

func convertImage(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	if target != "pdf" && !raster.Encodable(target) {
		return nil, unsupported(Subcategory(extensionOf(f.Name)), target)
	}
	if undecodableImages[extensionOf(f.Name)] {
		return e.simulate(ctx, f, target, p)
	}

	img, err := decodeImage(f)
	if err != nil {
		return nil, err
	}
	p.report(40)

	if target == "pdf" {
		data, err := imageToPDF(img)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return newResult(f, target, data), nil
	}

	if target != "svg" {
		p.report(70)
	}
	data, err := raster.EncodeBytes(img, target, e.jpegQuality)
	if err != nil {
		return nil, collaboratorErr("raster", "encode "+target, err)
	}
	p.report(90)
	return newResult(f, target, data), nil
}

func decodeImage(f File) (image.Image, error) {
	img, _, err := raster.Decode(f.Data, isSVG(f))
	if err != nil {
		return nil, collaboratorErr("raster", "decode", err)
	}
	return img, nil
}

// imageToPDF embeds img as a PNG on a page fitted to A4 plus a 20pt border.
// The image is flattened onto white first: gofpdf only accepts 8-bit PNGs
// and the encoder writes 16-bit ones for decoded JPEGs.
func imageToPDF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, raster.Flatten(img, color.White)); err != nil {
		return nil, collaboratorErr("raster", "encode png", err)
	}
	b := img.Bounds()
	data, err := pdfdoc.ImageToPDF(buf.Bytes(), b.Dx(), b.Dy())
	if err != nil {
		return nil, collaboratorErr("gofpdf", "embed image", err)
	}
	return data, nil
}

// textPDF lays text out on A4 pages titled with the source name.
func textPDF(text, title string) ([]byte, error) {
	data, err := pdfdoc.TextToPDF(text, title)
	if err != nil {
		return nil, collaboratorErr("gofpdf", "write", err)
	}
	return data, nil
}

// pdfResult is a Result holding text paginated into a PDF.
func pdfResult(f File, text string) (*Result, error) {
	data, err := textPDF(text, f.Name)
	if err != nil {
		return nil, err
	}
	return newResult(f, "pdf", data), nil
}

func textResult(f File, target, text string) *Result {
	return newResult(f, target, []byte(text))
}

// isUnavailable reports whether a codec could not perform an optional step.
func isUnavailable(err error) bool {
	return errors.Is(err, pdfdoc.ErrUnavailable)
}
