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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/nicholasgasior/convertflow-go/internal/ooxml"
	"github.com/nicholasgasior/convertflow-go/internal/richtext"
)

var (
	errNoWorkbookReader = errors.New("no reader for this workbook format")
	zipMagic            = []byte("PK\x03\x04")
	oleMagic            = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// readParagraphs extracts the text of a word-processing document: RTF by
// control-word stripping, OpenDocument from content.xml and everything else
// as an Office Open XML package.
func readParagraphs(f File) ([]ooxml.Paragraph, error) {
	switch {
	case extensionOf(f.Name) == "rtf" || bytes.HasPrefix(f.Data, []byte(`{\rtf`)):
		if !bytes.HasPrefix(bytes.TrimSpace(f.Data), []byte(`{\rtf`)) {
			return nil, collaboratorErr("rtf", "read", errors.New("missing {\\rtf header"))
		}
		return ooxml.Paragraphs(richtext.RTFToText(string(f.Data))), nil
	case extensionOf(f.Name) == "odt":
		paras, err := ooxml.ReadODFText(f.Data)
		if err != nil {
			return nil, collaboratorErr("odf", "read", err)
		}
		return paras, nil
	default:
		paras, err := ooxml.ReadDocument(f.Data)
		if err != nil {
			return nil, collaboratorErr("docx", "read", err)
		}
		return paras, nil
	}
}

// convertDocument handles Word, RTF and OpenDocument text. Extraction
// failures recover locally for pdf, txt and md; html has no fallback.
func convertDocument(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	switch target {
	case "pdf":
		text := fmt.Sprintf("Document: %s\nSize: %s", f.Name, sizeKB(f.Size()))
		if paras, err := readParagraphs(f); err == nil {
			if body := cleanExtracted(ooxml.PlainText(paras)); body != "" {
				text = body
			} else {
				text = "Document: " + f.Name
			}
		} else {
			e.log.Debug().Err(err).Str("file", f.Name).Msg("document text unavailable")
		}
		res, err := pdfResult(f, text)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil

	case "txt":
		p.report(50)
		paras, err := readParagraphs(f)
		if err != nil {
			e.log.Debug().Err(err).Str("file", f.Name).Msg("document text unavailable")
			return textResult(f, target, "[Text extraction from "+f.Name+" is not supported for this file]"), nil
		}
		p.report(90)
		return textResult(f, target, ooxml.PlainText(paras)), nil

	case "html":
		p.report(50)
		paras, err := readParagraphs(f)
		if err != nil {
			return nil, fmt.Errorf("document to HTML: %w", err)
		}
		p.report(90)
		return textResult(f, target, richtext.Page(f.Name, ooxml.HTML(paras))), nil

	case "md":
		paras, err := readParagraphs(f)
		if err != nil {
			return e.simulate(ctx, f, target, p)
		}
		body, err := htmlToMarkdown(ooxml.HTML(paras))
		if err != nil {
			body = ooxml.PlainText(paras)
		}
		return textResult(f, target, "# "+f.Name+"\n\n"+strings.TrimSpace(body)), nil
	}
	return e.simulate(ctx, f, target, p)
}

// convertSpreadsheet renders workbooks to PDF and hands every other target
// to the fallback.
func convertSpreadsheet(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	if target != "pdf" {
		return e.simulate(ctx, f, target, p)
	}

	text, err := workbookText(f)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			e.log.Debug().Err(err).Str("file", f.Name).Msg("workbook unreadable")
		}
		text = fmt.Sprintf("Spreadsheet: %s\nSize: %s\n\n"+
			"[Excel conversion requires server-side processing for full fidelity]", f.Name, sizeKB(f.Size()))
	}
	res, err := pdfResult(f, text)
	if err != nil {
		return nil, err
	}
	p.report(90)
	return res, nil
}

type sheet struct {
	name string
	rows [][]string
}

// workbookText lists every non-empty sheet as a "## name" heading followed
// by one " | "-joined line per row.
func workbookText(f File) (string, error) {
	var (
		sheets []sheet
		err    error
	)
	switch {
	case bytes.HasPrefix(f.Data, zipMagic):
		sheets, err = readXLSX(f.Data)
	case bytes.HasPrefix(f.Data, oleMagic):
		sheets, err = readXLS(f.Data)
	default:
		err = errNoWorkbookReader
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, s := range sheets {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n", s.name)
		for _, row := range s.rows {
			b.WriteString(strings.Join(row, " | "))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func readXLSX(data []byte) ([]sheet, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, collaboratorErr("excelize", "open", err)
	}
	defer wb.Close()

	var sheets []sheet
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		sheets = append(sheets, sheet{name: name, rows: rows})
	}
	return sheets, nil
}

func readXLS(data []byte) ([]sheet, error) {
	// extrame/xls opens by path only.
	tmp, err := os.CreateTemp("", "convertflow-*.xls")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, collaboratorErr("xls", "open", err)
	}

	var sheets []sheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		name := ws.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		var rows [][]string
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		if len(rows) > 0 {
			sheets = append(sheets, sheet{name: name, rows: rows})
		}
	}
	return sheets, nil
}
