package convertflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nicholasgasior/convertflow-go/internal/raster"
)

// MergedName is the name of the document produced by MergeDocuments.
const MergedName = "merged.pdf"

var errNothingToMerge = errors.New("no documents to merge")

// MergeDocuments appends the pages of every input, in the order given, to
// one new PDF. Progress rises to 90 as inputs are consumed.
func (e *Engine) MergeDocuments(ctx context.Context, files []File, onProgress ProgressFunc) (*Result, error) {
	p := newProgress(onProgress)
	return dispatch(ctx, e, MergedName, "pdf", p, func(string) (*Result, error) {
		if len(files) == 0 {
			return nil, errNothingToMerge
		}
		var merged []byte
		for i, f := range files {
			docs := [][]byte{f.Data}
			if merged != nil {
				docs = [][]byte{merged, f.Data}
			}
			out, err := e.codec.Merge(ctx, docs)
			if err != nil {
				return nil, fmt.Errorf("append %s: %w", f.Name, collaboratorErr("pdf", "merge", err))
			}
			merged = out
			p.fraction(i+1, len(files), 90)
		}
		return &Result{Data: merged, Name: MergedName, MIMEType: mimeForFormat("pdf")}, nil
	})
}

// SplitDocument writes every page of a PDF to its own document named
// <base>_page_<n>.pdf, n counting from 1.
func (e *Engine) SplitDocument(ctx context.Context, f File, onProgress ProgressFunc) ([]*Result, error) {
	p := newProgress(onProgress)
	return dispatch(ctx, e, f.Name, "pdf", p, func(string) ([]*Result, error) {
		pages, err := e.codec.SplitPages(ctx, f.Data)
		if err != nil {
			return nil, collaboratorErr("pdf", "split", err)
		}
		base := f.Name
		if strings.EqualFold(extensionOf(base), "pdf") {
			base = base[:len(base)-len(".pdf")]
		}
		results := make([]*Result, len(pages))
		for i, page := range pages {
			results[i] = &Result{
				Data:     page,
				Name:     fmt.Sprintf("%s_page_%d.pdf", base, i+1),
				MIMEType: mimeForFormat("pdf"),
			}
			p.fraction(i+1, len(pages), 90)
		}
		return results, nil
	})
}

// RecompressImage re-encodes an image as JPEG at the engine's compression
// quality on a white background. JPEG inputs keep their name.
func (e *Engine) RecompressImage(ctx context.Context, f File, onProgress ProgressFunc) (*Result, error) {
	p := newProgress(onProgress)
	return dispatch(ctx, e, f.Name, "jpg", p, func(string) (*Result, error) {
		img, err := decodeImage(f)
		if err != nil {
			return nil, err
		}
		p.report(50)
		data, err := raster.EncodeBytes(img, "jpeg", e.compressQuality)
		if err != nil {
			return nil, collaboratorErr("raster", "encode jpeg", err)
		}
		p.report(90)

		name := f.Name
		if ext := extensionOf(name); ext != "jpg" && ext != "jpeg" {
			name = replaceExtension(name, "jpg")
		}
		return &Result{Data: data, Name: name, MIMEType: mimeForFormat("jpg")}, nil
	})
}

// GrayscaleImage replaces every pixel by its luma and re-encodes in the
// source format, or PNG when that format cannot be written. The output is
// named <base>_grayscale.<ext>.
func (e *Engine) GrayscaleImage(ctx context.Context, f File, onProgress ProgressFunc) (*Result, error) {
	p := newProgress(onProgress)
	format := extensionOf(f.Name)
	if format == "svg" || !raster.Encodable(format) {
		format = "png"
	}
	return dispatch(ctx, e, f.Name, format, p, func(string) (*Result, error) {
		img, err := decodeImage(f)
		if err != nil {
			return nil, err
		}
		p.report(40)
		gray := raster.Grayscale(img)
		p.report(80)
		data, err := raster.EncodeBytes(gray, format, e.jpegQuality)
		if err != nil {
			return nil, collaboratorErr("raster", "encode "+format, err)
		}
		p.report(90)

		name := f.Name
		if i := strings.LastIndex(name, "."); i > 0 {
			name = name[:i]
		}
		return &Result{Data: data, Name: name + "_grayscale." + format, MIMEType: mimeForFormat(format)}, nil
	})
}

// BatchItem is the outcome of one file in ConvertBatch.
type BatchItem struct {
	File   string
	Result *Result
	Err    error
}

// BatchProgressFunc receives progress for the file at index.
type BatchProgressFunc func(index, percent int)

// ConvertBatch converts each file to target in turn. A failed file is
// recorded in its item and does not stop the others.
func (e *Engine) ConvertBatch(ctx context.Context, files []File, target string, onProgress BatchProgressFunc) []BatchItem {
	items := make([]BatchItem, len(files))
	for i, f := range files {
		var fn ProgressFunc
		if onProgress != nil {
			fn = func(percent int) { onProgress(i, percent) }
		}
		res, err := e.Convert(ctx, f, target, Detect(f.Name, f.MIMEType), fn)
		items[i] = BatchItem{File: f.Name, Result: res, Err: err}
	}
	return items
}
