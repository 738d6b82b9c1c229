package ooxml

import (
	"archive/zip"
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestWriteReadDocumentRoundTrip(t *testing.T) {
	in := []Paragraph{
		{Level: 1, Text: "Report"},
		{Text: "First line\nsecond line"},
		{Text: ""},
		{Text: "Tabs\tand <markup> & more"},
	}
	data, err := WriteDocument(in)
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	out, err := ReadDocument(data)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip:\n got %+v\nwant %+v", out, in)
	}
}

func TestWriteDocumentParts(t *testing.T) {
	data, err := WriteDocument(Paragraphs("a\r\nb"))
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml", "word/settings.xml"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("missing part %s (have %v)", want, names)
		}
	}
	again, _ := WriteDocument(Paragraphs("a\r\nb"))
	if !bytes.Equal(data, again) {
		t.Error("output is not reproducible")
	}
}

func TestReadDocumentNotZip(t *testing.T) {
	if _, err := ReadDocument([]byte("plain text")); err == nil {
		t.Error("expected error")
	}
}

func TestReadODFText(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>
<text:h text:outline-level="2">Chapter</text:h>
<text:p>Hello<text:s text:c="3"/>world<text:tab/>x<text:line-break/>y</text:p>
</office:text></office:body></office:document-content>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("content.xml")
	w.Write([]byte(content))
	zw.Close()

	paras, err := ReadODFText(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadODFText: %v", err)
	}
	want := []Paragraph{{Level: 2, Text: "Chapter"}, {Text: "Hello   world\tx\ny"}}
	if !reflect.DeepEqual(paras, want) {
		t.Errorf("got %+v, want %+v", paras, want)
	}
}

func TestHTML(t *testing.T) {
	got := HTML([]Paragraph{{Level: 2, Text: "T"}, {Text: "  "}, {Text: "a<b"}})
	if got != "<h2>T</h2><p>a&lt;b</p>" {
		t.Errorf("HTML = %s", got)
	}
	if PlainText([]Paragraph{{Text: "a"}, {Text: "b"}}) != "a\nb" {
		t.Error("PlainText mismatch")
	}
	if !strings.Contains(HTML([]Paragraph{{Text: "x\ny"}}), "x<br>y") {
		t.Error("line break not rendered")
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := map[string]int{"Heading1": 1, "heading 3": 3, "Title": 1, "Heading9": 0, "Normal": 0}
	for style, want := range tests {
		if got := headingLevel(style); got != want {
			t.Errorf("headingLevel(%q) = %d, want %d", style, got, want)
		}
	}
}
