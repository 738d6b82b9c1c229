package convertflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/nicholasgasior/convertflow-go/internal/richtext"
	"github.com/nicholasgasior/convertflow-go/internal/structured"
)

func convertText(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	text := readText(f)
	p.report(40)

	var out string
	switch target {
	case "pdf":
		res, err := pdfResult(f, text)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil
	case "html":
		out = richtext.Preformatted(f.Name, text)
	case "md":
		out = "# " + f.Name + "\n\n```\n" + text + "\n```"
	case "rtf":
		out = richtext.RTF(text, richtext.FontBody, 22)
	case "csv":
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = `"` + strings.ReplaceAll(line, `"`, `""`) + `"`
		}
		out = strings.Join(lines, "\n")
	case "json":
		doc := structured.ObjectValue(
			structured.Field{Key: "filename", Value: structured.StringValue(f.Name)},
			structured.Field{Key: "content", Value: structured.StringValue(text)},
			structured.Field{Key: "lines", Value: structured.NumberValue(fmt.Sprint(strings.Count(text, "\n") + 1))},
		)
		out = structured.Marshal(doc, "  ")
	case "xml":
		out = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<document>\n" +
			"  <filename>" + richtext.EscapeHTML(f.Name) + "</filename>\n" +
			"  <content><![CDATA[" + text + "]]></content>\n</document>"
	case "docx", "epub":
		return e.simulate(ctx, f, target, p)
	default:
		return nil, unsupported(SubText, target)
	}
	p.report(90)
	return textResult(f, target, out), nil
}

func convertMarkdown(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	md := readText(f)
	p.report(30)

	var out string
	switch target {
	case "html":
		out = richtext.MarkdownToHTML(md, f.Name)
	case "txt":
		out = richtext.MarkdownToText(md)
	case "pdf":
		res, err := pdfResult(f, md)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil
	case "docx", "rtf", "epub":
		return e.simulate(ctx, f, target, p)
	default:
		return nil, unsupported(SubMarkdown, target)
	}
	p.report(90)
	return textResult(f, target, out), nil
}

func convertHTML(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	src := readText(f)
	p.report(40)

	var out string
	switch target {
	case "txt":
		out = htmlTextContent(src)
	case "pdf":
		res, err := pdfResult(f, htmlTextContent(src))
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil
	case "md":
		body, err := htmlToMarkdown(src)
		if err != nil {
			return nil, collaboratorErr("html-to-markdown", "convert", err)
		}
		heading := extractHTMLTitle(src)
		if heading == "" {
			heading = f.Name
		}
		out = "# " + heading + "\n\n" + strings.TrimSpace(body)
	case "json":
		doc := structured.ObjectValue(
			structured.Field{Key: "source", Value: structured.StringValue(f.Name)},
			structured.Field{Key: "content", Value: structured.StringValue(htmlTextContent(src))},
		)
		out = structured.Marshal(doc, "  ")
	case "docx", "rtf", "epub":
		return e.simulate(ctx, f, target, p)
	default:
		return nil, unsupported(SubHTML, target)
	}
	p.report(90)
	return textResult(f, target, out), nil
}

func convertCode(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	code := readText(f)
	p.report(40)
	lang := extensionOf(f.Name)

	var out string
	switch target {
	case "pdf":
		res, err := pdfResult(f, code)
		if err != nil {
			return nil, err
		}
		p.report(90)
		return res, nil
	case "html":
		name := richtext.EscapeHTML(f.Name)
		out = richtext.Page(f.Name, "<h2>"+name+"</h2><pre><code class=\"language-"+lang+"\">"+
			richtext.EscapeHTML(code)+"</code></pre>")
	case "txt":
		out = code
	case "md":
		out = "# " + f.Name + "\n\n```" + lang + "\n" + code + "\n```"
	case "rtf":
		out = richtext.RTF(code, richtext.FontCode, 20)
	default:
		return nil, unsupported(SubCode, target)
	}
	p.report(90)
	return textResult(f, target, out), nil
}

// convertLatex hands every target it does not render to the fallback.
func convertLatex(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error) {
	tex := readText(f)
	p.report(40)

	switch target {
	case "pdf":
		return pdfResult(f, tex)
	case "txt":
		return textResult(f, target, richtext.LaTeXToText(tex)), nil
	case "html":
		return textResult(f, target, richtext.Preformatted(f.Name, tex)), nil
	case "md":
		return textResult(f, target, "# "+f.Name+"\n\n```latex\n"+tex+"\n```"), nil
	}
	return e.simulate(ctx, f, target, p)
}
