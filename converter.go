// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convertflow

import (
	"context"
	"path/filepath"
	"strings"
)

// Category is the top-level kind of a file.
type Category string

const (
	CategoryDocument     Category = "document"
	CategoryImage        Category = "image"
	CategoryVideo        Category = "video"
	CategoryAudio        Category = "audio"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryPresentation Category = "presentation"
	CategoryArchive      Category = "archive"
	CategoryEbook        Category = "ebook"
	CategoryOther        Category = "other"
)

// Subcategory names a specific format within a Category.
type Subcategory string

// Subcategories that have a dedicated route in the dispatcher. Every other
// subcategory found in the catalog is still valid, it just routes to the
// fallback or to a category-wide handler.
const (
	SubPDF          Subcategory = "pdf"
	SubWord         Subcategory = "word"
	SubText         Subcategory = "text"
	SubRichText     Subcategory = "richtext"
	SubOpenDocument Subcategory = "opendocument"
	SubHTML         Subcategory = "html"
	SubMarkdown     Subcategory = "markdown"
	SubJSON         Subcategory = "json"
	SubXML          Subcategory = "xml"
	SubYAML         Subcategory = "yaml"
	SubTOML         Subcategory = "toml"
	SubCode         Subcategory = "code"
	SubLaTeX        Subcategory = "latex"
	SubCSV          Subcategory = "csv"
	SubTSV          Subcategory = "tsv"
	SubExcel        Subcategory = "excel"
)

// FileTypeDescriptor is the result of type detection. It is built once per
// input and never modified.
type FileTypeDescriptor struct {
	Category    Category
	Subcategory Subcategory
	Label       string
	Icon        string
	Extension   string
	MIMEHint    string
	Confidence  float64
}

// ConversionOption is a legal target format for a detected type.
type ConversionOption struct {
	Format        string
	DisplayName   string
	IsRecommended bool
}

// OperationDescriptor is a non-reformatting transform offered for a type.
type OperationDescriptor struct {
	ID    string
	Label string
}

// File is a raw input: its name, its bytes and an optional mime hint.
type File struct {
	Name     string
	Data     []byte
	MIMEType string
}

// Size returns the input size in bytes.
func (f File) Size() int {
	return len(f.Data)
}

// Result is the artifact produced by one conversion call. Ownership of Data
// passes to the caller.
type Result struct {
	Data     []byte
	Name     string
	MIMEType string
}

// ProgressFunc receives percentages in [0,100]. It may be nil.
type ProgressFunc func(percent int)

// transformFunc converts one file to target. Implementations branch on target
// against an explicit whitelist and return *UnsupportedPairError otherwise.
type transformFunc func(ctx context.Context, e *Engine, f File, target string, p *progress) (*Result, error)

// newResult builds a Result whose name carries the requested target extension.
func newResult(f File, target string, data []byte) *Result {
	return &Result{
		Data:     data,
		Name:     replaceExtension(f.Name, target),
		MIMEType: mimeForFormat(target),
	}
}

// replaceExtension swaps the extension after the last dot. A leading dot
// (".env") is treated as part of the base name.
func replaceExtension(name, ext string) string {
	base := name
	if i := strings.LastIndex(name, "."); i > 0 {
		base = name[:i]
	}
	return base + "." + ext
}

// baseName strips the directory and the final extension.
func baseName(name string) string {
	name = filepath.Base(name)
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
