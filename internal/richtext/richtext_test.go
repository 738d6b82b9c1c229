package richtext

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	md := "# Title\n\nSome **bold** and *it* with `code` and [link](http://x).\n- item\n> quote"
	out := MarkdownToHTML(md, "notes.md")
	for _, want := range []string{
		"<title>notes.md</title>",
		"<p><h1>Title</h1></p><p>",
		"<strong>bold</strong>",
		"<em>it</em>",
		"<code>code</code>",
		`<a href="http://x">link</a>`,
		"<br><li>item</li><br><blockquote>quote</blockquote></p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMarkdownToText(t *testing.T) {
	md := "## Head\n**b** *i* `c` ![img](a.png) [site](http://x) ![](b.png)\n- one\n> q"
	want := "Head\nb i c !img site \n• one\nq"
	if got := MarkdownToText(md); got != want {
		t.Errorf("MarkdownToText = %q, want %q", got, want)
	}
}

func TestLaTeXToText(t *testing.T) {
	tex := `\section{Intro} Hello \textbf{world}\\ \LaTeX{} rocks`
	want := `Intro Hello world\\  rocks`
	if got := LaTeXToText(tex); got != want {
		t.Errorf("LaTeXToText = %q, want %q", got, want)
	}
}

func TestTableEscapes(t *testing.T) {
	out := Table("t", []string{"a<b"}, [][]string{{"x & y"}})
	if !strings.Contains(out, "<th>a&lt;b</th>") || !strings.Contains(out, "<td>x &amp; y</td>") {
		t.Errorf("unexpected table: %s", out)
	}
	if got := Table("t", nil, nil); !strings.Contains(got, "Empty CSV") {
		t.Errorf("empty table = %s", got)
	}
}

func TestRTFRoundTrip(t *testing.T) {
	text := "a{b}\\c\nnext é 😀"
	doc := RTF(text, FontBody, 22)
	if !strings.HasPrefix(doc, `{\rtf1\ansi\deff0{\fonttbl{\f0 Helvetica;}}\f0\fs22 `) {
		t.Fatalf("unexpected header: %s", doc)
	}
	if got := RTFToText(doc); got != text {
		t.Errorf("RTFToText = %q, want %q", got, text)
	}
}

func TestRTFToTextSkipsDestinations(t *testing.T) {
	doc := `{\rtf1{\*\generator Writer;}{\colortbl;\red0\green0\blue0;}Caf\'e9\tab x\line y}`
	if got, want := RTFToText(doc), "Café\tx\ny"; got != want {
		t.Errorf("RTFToText = %q, want %q", got, want)
	}
}
