package convertflow

import (
	"context"
	"strings"

	"github.com/nicholasgasior/convertflow-go/internal/richtext"
	"github.com/nicholasgasior/convertflow-go/internal/structured"
)

func parseJSONInput(src string) (structured.Value, error) {
	v, err := structured.ParseJSON([]byte(src))
	if err != nil {
		return structured.Value{}, collaboratorErr("json", "parse", err)
	}
	return v, nil
}

func convertJSON(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	var out string
	switch target {
	case "txt":
		out = src
	case "csv", "xml", "yaml":
		v, err := parseJSONInput(src)
		if err != nil {
			return nil, err
		}
		switch target {
		case "csv":
			out = structured.ToCSV(v)
		case "xml":
			out = structured.ToXML(v, "root")
		default:
			out = structured.ToYAML(v)
		}
	case "html":
		out = richtext.Preformatted(f.Name, src)
	case "md":
		out = "# " + f.Name + "\n\n```json\n" + src + "\n```"
	case "pdf":
		res, err := pdfResult(f, src)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil
	default:
		return nil, unsupported(SubJSON, target)
	}
	p.report(90)
	return textResult(f, target, out), nil
}

// convertXML never parses its input: every target carries the document
// verbatim in some wrapper.
func convertXML(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	switch target {
	case "txt", "csv":
		return textResult(f, target, src), nil
	case "json":
		doc := structured.ObjectValue(
			structured.Field{Key: "xml_source", Value: structured.StringValue(f.Name)},
			structured.Field{Key: "content", Value: structured.StringValue(src)},
		)
		return textResult(f, target, structured.Marshal(doc, "  ")), nil
	case "yaml":
		lines := strings.Split(src, "\n")
		for i, l := range lines {
			lines[i] = "  " + l
		}
		return textResult(f, target, "# Converted from "+f.Name+"\ncontent: |\n"+strings.Join(lines, "\n")), nil
	case "html":
		return textResult(f, target, richtext.Preformatted(f.Name, src)), nil
	case "pdf":
		return pdfResult(f, src)
	}
	return nil, unsupported(SubXML, target)
}

// convertYAML reads only flat "key: value" documents; see
// structured.ParseYAML for what is deliberately not understood.
func convertYAML(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	switch target {
	case "json":
		return textResult(f, target, structured.Marshal(structured.ParseYAML(src), "  ")), nil
	case "txt", "csv":
		return textResult(f, target, src), nil
	case "xml":
		return textResult(f, target, structured.ToXML(structured.ParseYAML(src), "root")), nil
	case "html":
		return textResult(f, target, richtext.Preformatted(f.Name, src)), nil
	case "pdf":
		return pdfResult(f, src)
	}
	return nil, unsupported(SubYAML, target)
}

func convertTOML(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	switch target {
	case "json":
		return textResult(f, target, structured.Marshal(structured.ParseTOML(src), "  ")), nil
	case "yaml":
		return textResult(f, target, structured.ToYAML(structured.ParseTOML(src))), nil
	case "xml":
		return textResult(f, target, structured.ToXML(structured.ParseTOML(src), "root")), nil
	case "txt":
		return textResult(f, target, src), nil
	}
	return nil, unsupported(SubTOML, target)
}
