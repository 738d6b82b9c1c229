// Package richtext renders plain text into the markup formats the engine
// emits (HTML pages, RTF documents) and strips markup back to text.
package richtext

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// EscapeHTML escapes &, <, > and ".
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>%s</title>
<style>body{font-family:system-ui,sans-serif;max-width:800px;margin:2em auto;padding:0 1em;line-height:1.6;color:#333;}
pre{background:#f4f4f4;padding:1em;border-radius:8px;overflow-x:auto;font-size:0.9em;}
code{font-family:'JetBrains Mono',monospace;}</style>
</head><body>%s</body></html>`

// Page wraps an HTML body fragment in a complete document titled title.
func Page(title, body string) string {
	return fmt.Sprintf(pageTemplate, EscapeHTML(title), body)
}

// Preformatted wraps escaped text in a <pre> page.
func Preformatted(title, text string) string {
	return Page(title, "<pre>"+EscapeHTML(text)+"</pre>")
}

const tableTemplate = `<!DOCTYPE html><html><head><meta charset="UTF-8"><title>%s</title>
<style>body{font-family:system-ui;padding:2em}table{border-collapse:collapse;width:100%%}
th,td{border:1px solid #ddd;padding:8px;text-align:left}th{background:#6366F1;color:white}
tr:nth-child(even){background:#f9f9f9}</style>
</head><body><table><thead><tr>%s</tr></thead><tbody>%s</tbody></table></body></html>`

// Table renders a header row and body rows as a styled HTML table page. No
// rows at all yields a short "Empty CSV" page.
func Table(title string, headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return "<html><body><p>Empty CSV</p></body></html>"
	}
	var head, body strings.Builder
	for _, h := range headers {
		head.WriteString("<th>" + EscapeHTML(h) + "</th>")
	}
	for _, row := range rows {
		body.WriteString("<tr>")
		for _, cell := range row {
			body.WriteString("<td>" + EscapeHTML(cell) + "</td>")
		}
		body.WriteString("</tr>")
	}
	return fmt.Sprintf(tableTemplate, EscapeHTML(title), head.String(), body.String())
}

type rule struct {
	re   *regexp.Regexp
	repl string
}

var markdownToHTML = []rule{
	{regexp.MustCompile(`(?m)^### (.+)$`), "<h3>$1</h3>"},
	{regexp.MustCompile(`(?m)^## (.+)$`), "<h2>$1</h2>"},
	{regexp.MustCompile(`(?m)^# (.+)$`), "<h1>$1</h1>"},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`\*(.+?)\*`), "<em>$1</em>"},
	{regexp.MustCompile("`(.+?)`"), "<code>$1</code>"},
	{regexp.MustCompile(`\[(.+?)\]\((.+?)\)`), `<a href="$2">$1</a>`},
	{regexp.MustCompile(`(?m)^[-*+]\s(.+)$`), "<li>$1</li>"},
	{regexp.MustCompile(`(?m)^>\s(.+)$`), "<blockquote>$1</blockquote>"},
}

// MarkdownToHTML applies a fixed set of line rewrites (headings, emphasis,
// code spans, links, list items, quotes), turns blank lines into paragraph
// breaks and single newlines into <br>, and wraps the result in a page.
// Input markup is not escaped.
func MarkdownToHTML(md, title string) string {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	for _, r := range markdownToHTML {
		md = r.re.ReplaceAllString(md, r.repl)
	}
	md = strings.ReplaceAll(md, "\n\n", "</p><p>")
	md = strings.ReplaceAll(md, "\n", "<br>")
	return Page(title, "<p>"+md+"</p>")
}

var markdownToText = []rule{
	{regexp.MustCompile(`#{1,6}\s?`), ""},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.+?)\*`), "$1"},
	{regexp.MustCompile("`(.+?)`"), "$1"},
	{regexp.MustCompile(`\[(.+?)\]\(.+?\)`), "$1"},
	{regexp.MustCompile(`!\[\]\(.+?\)`), ""},
	{regexp.MustCompile(`(?m)^[-*+]\s`), "• "},
	{regexp.MustCompile(`(?m)^>\s?`), ""},
}

// MarkdownToText strips markdown syntax: heading markers, emphasis, code
// spans and link targets. List bullets become "• ". Links are rewritten
// before images, so an image keeps its alt text behind a "!" and only
// images without alt text are dropped.
func MarkdownToText(md string) string {
	for _, r := range markdownToText {
		md = r.re.ReplaceAllString(md, r.repl)
	}
	return md
}

var (
	latexCommandArg = regexp.MustCompile(`\\[a-zA-Z]+\{([^}]*)\}`)
	latexCommand    = regexp.MustCompile(`\\[a-zA-Z]+`)
)

// LaTeXToText unwraps single-argument commands, drops the remaining
// commands and removes stray braces.
func LaTeXToText(tex string) string {
	tex = latexCommandArg.ReplaceAllString(tex, "$1")
	tex = latexCommand.ReplaceAllString(tex, "")
	return strings.NewReplacer("{", "", "}", "").Replace(tex)
}

// RTF fonts.
const (
	FontBody = "Helvetica"
	FontCode = "Courier New"
)

// RTF wraps text in a minimal RTF document using font at size half-points.
// Each newline becomes a paragraph break; backslashes and braces are escaped
// and non-ASCII characters are written as \u escapes.
func RTF(text, font string, size int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{\rtf1\ansi\deff0{\fonttbl{\f0 %s;}}\f0\fs%d `, font, size)
	for _, r := range strings.ReplaceAll(text, "\r\n", "\n") {
		switch {
		case r == '\n':
			b.WriteString(`\par `)
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80:
			b.WriteRune(r)
		default:
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, `\u%d?`, int16(u))
			}
		}
	}
	b.WriteByte('}')
	return b.String()
}
