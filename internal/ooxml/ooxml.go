// Package ooxml reads and writes word-processing packages: Office Open XML
// (.docx) and the text body of OpenDocument (.odt) files.
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"path"
	"strings"
)

// Common OOXML namespaces.
const (
	NSRelationships    = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes     = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSRelDoc           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relOfficeDocument = NSRelDoc + "/officeDocument"
	relStyles         = NSRelDoc + "/styles"
	relSettings       = NSRelDoc + "/settings"
)

// Relationship represents an OOXML relationship.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships is the root element for .rels files.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Xmlns         string         `xml:"xmlns,attr,omitempty"`
	Relationships []Relationship `xml:"Relationship"`
}

// Paragraph is one block of document text. Level is 1-6 for headings and 0
// for body text.
type Paragraph struct {
	Level int
	Text  string
}

// PlainText joins paragraphs with newlines.
func PlainText(paras []Paragraph) string {
	lines := make([]string, len(paras))
	for i, p := range paras {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}

// HTML renders paragraphs as an HTML fragment, headings as <hN>. Empty body
// paragraphs are dropped.
func HTML(paras []Paragraph) string {
	var b strings.Builder
	for _, p := range paras {
		text := html.EscapeString(p.Text)
		text = strings.ReplaceAll(text, "\n", "<br>")
		switch {
		case p.Level > 0:
			fmt.Fprintf(&b, "<h%d>%s</h%d>", p.Level, text, p.Level)
		case strings.TrimSpace(p.Text) != "":
			b.WriteString("<p>" + text + "</p>")
		}
	}
	return b.String()
}

func openZip(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	return zr, nil
}

// ReadFileFromZip reads a file from a zip archive.
func ReadFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file %q not found in package", name)
}

func decodeRels(data []byte) ([]Relationship, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	return rels.Relationships, nil
}

// mainDocumentPath follows the package relationships to the main document
// part, defaulting to word/document.xml.
func mainDocumentPath(zr *zip.Reader) string {
	data, err := ReadFileFromZip(zr, "_rels/.rels")
	if err != nil {
		return "word/document.xml"
	}
	rels, err := decodeRels(data)
	if err != nil {
		return "word/document.xml"
	}
	for _, r := range rels {
		if r.Type == relOfficeDocument {
			return strings.TrimPrefix(path.Clean("/"+r.Target), "/")
		}
	}
	return "word/document.xml"
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
