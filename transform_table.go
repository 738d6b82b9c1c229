package convertflow

import (
	"context"
	"strings"

	"github.com/nicholasgasior/convertflow-go/internal/richtext"
	"github.com/nicholasgasior/convertflow-go/internal/structured"
)

// records returns the parsed rows as header order plus string cells.
func records(rows structured.Value) ([]string, [][]string) {
	headers := structured.Headers(rows)
	cells := make([][]string, len(rows.Items))
	for i, row := range rows.Items {
		cells[i] = make([]string, len(headers))
		for j, h := range headers {
			if v, ok := row.Get(h); ok {
				cells[i][j] = v.String()
			}
		}
	}
	return headers, cells
}

func convertCSV(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	var out string
	switch target {
	case "json":
		out = structured.Marshal(structured.ParseCSV(src), "  ")
	case "txt":
		out = src
	case "html":
		headers, rows := records(structured.ParseCSV(src))
		out = richtext.Table(f.Name, headers, rows)
	case "xml":
		out = csvToXML(structured.ParseCSV(src))
	case "yaml":
		out = structured.ToYAML(structured.ParseCSV(src))
	case "tsv":
		lines := strings.Split(src, "\n")
		for i, line := range lines {
			lines[i] = strings.ReplaceAll(line, ",", "\t")
		}
		out = strings.Join(lines, "\n")
	case "md":
		headers, rows := records(structured.ParseCSV(src))
		if len(rows) == 0 {
			return nil, unsupported(SubCSV, target)
		}
		return textResult(f, target, markdownTable(headers, rows)), nil
	case "pdf":
		res, err := pdfResult(f, src)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil
	case "xlsx":
		return e.simulate(ctx, f, target, p)
	default:
		return nil, unsupported(SubCSV, target)
	}
	p.report(90)
	return textResult(f, target, out), nil
}

// csvToXML writes one <row> per record with one child element per column.
func csvToXML(rows structured.Value) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<data>\n")
	for i, row := range rows.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  <row>\n")
		for j, field := range row.Fields {
			if j > 0 {
				b.WriteByte('\n')
			}
			tag := structured.ElementName(field.Key)
			b.WriteString("    <" + tag + ">" + richtext.EscapeHTML(field.Value.String()) + "</" + tag + ">")
		}
		b.WriteString("\n  </row>")
	}
	b.WriteString("\n</data>")
	return b.String()
}

// markdownTable renders a header row, a --- separator and one row per record.
func markdownTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |")
	for _, row := range rows {
		b.WriteString("\n| " + strings.Join(row, " | ") + " |")
	}
	return b.String()
}

// convertTSV handles csv and json itself; any other target is re-expressed
// as comma-separated text and passed to the CSV transform.
func convertTSV(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	switch target {
	case "csv":
		lines := strings.Split(src, "\n")
		for i, line := range lines {
			cells := strings.Split(line, "\t")
			for j, c := range cells {
				cells[j] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
			}
			lines[i] = strings.Join(cells, ",")
		}
		return textResult(f, target, strings.Join(lines, "\n")), nil
	case "json":
		return textResult(f, target, structured.Marshal(structured.ParseTSV(src), "  ")), nil
	}

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", ",")
	}
	csvFile := File{
		Name:     replaceExtension(f.Name, "csv"),
		Data:     []byte(strings.Join(lines, "\n")),
		MIMEType: "text/csv; charset=utf-8",
	}
	return convertCSV(ctx, e, csvFile, target, p)
}
