package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// packageTime is stamped on every entry so output is reproducible.
var packageTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type contentTypes struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []contentDefault  `xml:"Default"`
	Overrides []contentOverride `xml:"Override"`
}

type contentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

const (
	ctWordMain = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctSettings = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
)

const stylesXML = `<w:styles xmlns:w="` + NSWordprocessingML + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`%s</w:styles>`

const settingsXML = `<w:settings xmlns:w="` + NSWordprocessingML + `"><w:defaultTabStop w:val="720"/></w:settings>`

func headingStyles() string {
	var b strings.Builder
	for lvl := 1; lvl <= 6; lvl++ {
		size := 36 - (lvl-1)*4
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="Heading%d"><w:name w:val="heading %d"/>`+
			`<w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="%d"/></w:pPr>`+
			`<w:rPr><w:b/><w:sz w:val="%d"/></w:rPr></w:style>`, lvl, lvl, lvl-1, size)
	}
	return b.String()
}

// WriteDocument builds a minimal .docx package holding paras. Lines inside
// a paragraph become <w:br/> breaks.
func WriteDocument(paras []Paragraph) ([]byte, error) {
	ct := contentTypes{
		Xmlns: NSContentTypes,
		Defaults: []contentDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []contentOverride{
			{PartName: "/word/document.xml", ContentType: ctWordMain},
			{PartName: "/word/styles.xml", ContentType: ctStyles},
			{PartName: "/word/settings.xml", ContentType: ctSettings},
		},
	}
	rootRels := Relationships{Xmlns: NSRelationships, Relationships: []Relationship{
		{ID: "rId1", Type: relOfficeDocument, Target: "word/document.xml"},
	}}
	docRels := Relationships{Xmlns: NSRelationships, Relationships: []Relationship{
		{ID: "rId1", Type: relStyles, Target: "styles.xml"},
		{ID: "rId2", Type: relSettings, Target: "settings.xml"},
	}}

	parts := []struct {
		name string
		body func() ([]byte, error)
	}{
		{"[Content_Types].xml", func() ([]byte, error) { return xml.Marshal(ct) }},
		{"_rels/.rels", func() ([]byte, error) { return xml.Marshal(rootRels) }},
		{"word/document.xml", func() ([]byte, error) { return documentXML(paras), nil }},
		{"word/_rels/document.xml.rels", func() ([]byte, error) { return xml.Marshal(docRels) }},
		{"word/styles.xml", func() ([]byte, error) { return []byte(fmt.Sprintf(stylesXML, headingStyles())), nil }},
		{"word/settings.xml", func() ([]byte, error) { return []byte(settingsXML), nil }},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		body, err := p.body()
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", p.name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: packageTime})
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(xml.Header)); err != nil {
			return nil, err
		}
		if _, err := w.Write(body); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func documentXML(paras []Paragraph) []byte {
	var b bytes.Buffer
	b.WriteString(`<w:document xmlns:w="` + NSWordprocessingML + `" xmlns:r="` + NSRelDoc + `"><w:body>`)
	for _, p := range paras {
		b.WriteString("<w:p>")
		if p.Level > 0 {
			fmt.Fprintf(&b, `<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, p.Level)
		}
		b.WriteString("<w:r>")
		for i, line := range strings.Split(p.Text, "\n") {
			if i > 0 {
				b.WriteString("<w:br/>")
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			xml.EscapeText(&b, []byte(line))
			b.WriteString("</w:t>")
		}
		b.WriteString("</w:r></w:p>")
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.Bytes()
}

// Paragraphs splits text into one body paragraph per line.
func Paragraphs(text string) []Paragraph {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	paras := make([]Paragraph, len(lines))
	for i, l := range lines {
		paras[i] = Paragraph{Text: l}
	}
	return paras
}
