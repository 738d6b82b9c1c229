// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convertflow

import (
	"context"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/nicholasgasior/convertflow-go/internal/ooxml"
	"github.com/nicholasgasior/convertflow-go/internal/pdfdoc"
	"github.com/nicholasgasior/convertflow-go/internal/raster"
	"github.com/nicholasgasior/convertflow-go/internal/richtext"
)

// pdfRenderScale is the zoom used for page previews (2 = 144 dpi).
const pdfRenderScale = 2

// pdfNoteTargets receive the page-count note instead of page content.
var pdfNoteTargets = []string{"html", "md", "docx", "rtf", "csv", "json", "xml", "epub"}

func convertPDF(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	p.report(30)

	switch {
	case target == "txt":
		pages, err := e.pageCount(ctx, f)
		if err != nil {
			return nil, err
		}
		p.report(60)
		text := fmt.Sprintf("Content extracted from: %s\nPages: %d\n\n", f.Name, pages)
		if body := e.pdfText(ctx, f); body != "" {
			text += body + "\n"
		} else {
			text += "--- Note: Full text extraction requires server-side OCR ---\n" +
				"This file was generated by ConvertFlow.\n"
		}
		p.report(90)
		return textResult(f, target, text), nil

	case target == "jpg" || target == "png":
		pages, err := e.pageCount(ctx, f)
		if err != nil {
			return nil, err
		}
		p.report(50)
		img, err := e.codec.RenderPage(ctx, f.Data, 0, pdfRenderScale)
		if err != nil && !isUnavailable(err) {
			return nil, collaboratorErr("pdf", "render page 1", err)
		}
		if img == nil {
			img = pdfPreviewCard(f, pages)
		}
		p.report(80)
		data, err := raster.EncodeBytes(img, target, e.jpegQuality)
		if err != nil {
			return nil, collaboratorErr("raster", "encode "+target, err)
		}
		return newResult(f, target, data), nil

	case slices.Contains(pdfNoteTargets, target):
		pages, err := e.pageCount(ctx, f)
		if err != nil {
			return nil, err
		}
		p.report(60)
		text := fmt.Sprintf("Content from: %s\nPages: %d\n\n"+
			"Note: Full PDF text extraction requires server-side processing (OCR).\n"+
			"Generated by ConvertFlow.", f.Name, pages)

		switch target {
		case "html":
			return textResult(f, target, richtext.Preformatted(f.Name, text)), nil
		case "md":
			return textResult(f, target, "# "+f.Name+"\n\n"+text), nil
		case "docx":
			data, err := ooxml.WriteDocument(ooxml.Paragraphs(text))
			if err != nil {
				return nil, collaboratorErr("ooxml", "write", err)
			}
			return newResult(f, target, data), nil
		case "rtf":
			return textResult(f, target, richtext.RTF(text, richtext.FontBody, 22)), nil
		}
		return textResult(f, target, text), nil
	}

	return nil, unsupported(SubPDF, target)
}

func (e *Engine) pageCount(ctx context.Context, f File) (int, error) {
	n, err := e.codec.PageCount(ctx, f.Data)
	if err != nil {
		return 0, collaboratorErr("pdf", "load", err)
	}
	return n, nil
}

// pdfText extracts the text layer, pages separated by a blank line. Any
// extraction failure yields "" and the caller falls back to a note.
func (e *Engine) pdfText(ctx context.Context, f File) string {
	pages, err := e.codec.ExtractText(ctx, f.Data)
	if err != nil {
		e.log.Debug().Err(err).Str("file", f.Name).Msg("pdf text extraction failed")
		return ""
	}
	for i := range pages {
		pages[i] = cleanExtracted(pages[i])
	}
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}

// pdfPreviewCard stands in for a rendered first page when no renderer is
// available.
func pdfPreviewCard(f File, pages int) image.Image {
	return raster.Card(int(pdfdoc.A4.Width), int(pdfdoc.A4.Height), pdfRenderScale,
		"PDF: "+f.Name,
		fmt.Sprintf("%d page(s)", pages),
		"Original size: "+sizeKB(f.Size()),
	)
}
