package convertflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nicholasgasior/convertflow-go/internal/ooxml"
)

// Simulate produces a placeholder artifact for target without looking at
// the content of f. It ticks progress from 20 to 90 and never fails for a
// non-empty target.
func (e *Engine) Simulate(ctx context.Context, f File, target string, onProgress ProgressFunc) (*Result, error) {
	p := newProgress(onProgress)
	res, err := e.simulate(ctx, f, strings.ToLower(target), p)
	if err != nil {
		return nil, err
	}
	p.report(100)
	return res, nil
}

func (e *Engine) simulate(ctx context.Context, f File, target string, p *progress) (*Result, error) {
	for i := 20; i <= 90; i += 10 {
		e.pause(ctx)
		p.report(i)
	}

	format := strings.ToUpper(target)
	text := fmt.Sprintf("Converted from: %s\nTarget format: %s\nOriginal size: %s\n\n"+
		"Note: Full %s conversion for this file type requires server-side processing.\n"+
		"Generated by ConvertFlow.", f.Name, format, sizeKB(f.Size()), format)

	e.log.Debug().Str("file", f.Name).Str("target", target).Msg("placeholder conversion")
	return e.placeholder(f, target, text), nil
}

// pause waits out the configured tick delay unless ctx is done first.
func (e *Engine) pause(ctx context.Context) {
	if e.fallbackDelay <= 0 {
		return
	}
	t := time.NewTimer(e.fallbackDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// placeholder packages text in a container that opens as target. A
// container that cannot be built degrades to flat text.
func (e *Engine) placeholder(f File, target, text string) *Result {
	var (
		data []byte
		err  error
	)
	switch target {
	case "pdf":
		data, err = textPDF(text, f.Name)
	case "docx":
		data, err = ooxml.WriteDocument(ooxml.Paragraphs(text))
	case "xlsx":
		data, err = textWorkbook(text)
	default:
		return textResult(f, target, text)
	}
	if err != nil {
		e.log.Warn().Err(err).Str("file", f.Name).Str("target", target).Msg("placeholder container failed, writing plain text")
		return textResult(f, target, text)
	}
	return newResult(f, target, data)
}

// textWorkbook writes one line of text per row in column A.
func textWorkbook(text string) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	for i, line := range strings.Split(text, "\n") {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, line); err != nil {
			return nil, err
		}
	}
	if err := wb.SetColWidth(sheet, "A", "A", 90); err != nil {
		return nil, err
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
