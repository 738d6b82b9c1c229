package ooxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadDocument extracts the paragraphs of a .docx package in reading order.
// Heading styles ("Heading1".."Heading6", "Title") set Level; tabs and
// breaks inside a run are kept as "\t" and "\n".
func ReadDocument(data []byte) ([]Paragraph, error) {
	zr, err := openZip(data)
	if err != nil {
		return nil, err
	}
	part := mainDocumentPath(zr)
	doc, err := ReadFileFromZip(zr, part)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", part, err)
	}

	dec := xml.NewDecoder(bytes.NewReader(doc))
	var (
		paras  []Paragraph
		cur    *Paragraph
		buf    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", part, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur = &Paragraph{}
				buf.Reset()
			case "pStyle":
				if cur != nil {
					cur.Level = headingLevel(attr(t, "val"))
				}
			case "t":
				inText = true
			case "tab":
				if cur != nil {
					buf.WriteByte('\t')
				}
			case "br", "cr":
				if cur != nil {
					buf.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText && cur != nil {
				buf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if cur != nil {
					cur.Text = buf.String()
					paras = append(paras, *cur)
					cur = nil
				}
			}
		}
	}
	return paras, nil
}

// headingLevel maps a paragraph style id to a heading level.
func headingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if s == "title" {
		return 1
	}
	if rest, ok := strings.CutPrefix(s, "heading"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 6 {
			return n
		}
	}
	return 0
}

// ReadODFText extracts the paragraphs and headings of an OpenDocument text
// package from content.xml. <text:s/> expands to its space count.
func ReadODFText(data []byte) ([]Paragraph, error) {
	zr, err := openZip(data)
	if err != nil {
		return nil, err
	}
	content, err := ReadFileFromZip(zr, "content.xml")
	if err != nil {
		return nil, fmt.Errorf("read content.xml: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(content))
	var (
		paras []Paragraph
		stack []*Paragraph
		bufs  []*strings.Builder
	)
	write := func(s string) {
		if len(bufs) > 0 {
			bufs[len(bufs)-1].WriteString(s)
		}
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse content.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p", "h":
				p := &Paragraph{}
				if t.Name.Local == "h" {
					p.Level = 1
					if n, err := strconv.Atoi(attr(t, "outline-level")); err == nil && n >= 1 && n <= 6 {
						p.Level = n
					}
				}
				stack = append(stack, p)
				bufs = append(bufs, &strings.Builder{})
			case "s":
				n := 1
				if c, err := strconv.Atoi(attr(t, "c")); err == nil && c > 0 {
					n = c
				}
				write(strings.Repeat(" ", n))
			case "tab":
				write("\t")
			case "line-break":
				write("\n")
			}
		case xml.CharData:
			write(string(t))
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "h") && len(stack) > 0 {
				p := stack[len(stack)-1]
				p.Text = bufs[len(bufs)-1].String()
				stack, bufs = stack[:len(stack)-1], bufs[:len(bufs)-1]
				paras = append(paras, *p)
			}
		}
	}
	return paras, nil
}
