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
	"slices"
	"strings"
)

// conversionGraph lists the legal targets per category and subcategory, in
// the order they are offered to the caller.
var conversionGraph = map[Category]map[Subcategory][]string{
	CategoryImage: {
		"jpeg": {"png", "webp", "bmp", "gif", "pdf", "ico"},
		"png":  {"jpg", "webp", "bmp", "gif", "pdf", "ico"},
		"webp": {"jpg", "png", "bmp", "gif", "pdf"},
		"gif":  {"jpg", "png", "webp", "bmp", "pdf"},
		"bmp":  {"jpg", "png", "webp", "gif", "pdf"},
		"svg":  {"png", "jpg", "webp", "pdf"},
		"tiff": {"jpg", "png", "webp", "pdf"},
		"ico":  {"png", "jpg"},
		"heic": {"jpg", "png", "webp", "pdf"},
		"heif": {"jpg", "png", "webp", "pdf"},
		"avif": {"jpg", "png", "webp", "pdf"},
	},
	CategoryDocument: {
		SubPDF:      {"txt", "jpg", "png", "docx"},
		SubWord:     {"pdf", "txt", "html"},
		SubText:     {"pdf", "html"},
		SubRichText: {"pdf", "txt"},
		SubHTML:     {"pdf", "txt"},
		SubMarkdown: {"pdf", "html", "txt"},
		SubJSON:     {"txt", "csv"},
		SubXML:      {"txt", "json"},
		SubLaTeX:    {"pdf", "txt"},
		SubYAML:     {"json", "txt", "xml", "csv", "html", "pdf"},
		SubTOML:     {"json", "yaml", "xml", "txt"},
		SubCode:     {"pdf", "html", "txt", "md", "rtf"},
	},
	CategorySpreadsheet: {
		SubExcel:        {"pdf", "csv", "json", "html", "txt"},
		SubCSV:          {"json", "txt", "html", "xlsx"},
		SubOpenDocument: {"pdf", "csv", "xlsx"},
		SubTSV:          {"csv", "json"},
	},
	CategoryPresentation: {
		"powerpoint":    {"pdf", "jpg", "png"},
		SubOpenDocument: {"pdf", "pptx"},
	},
	CategoryVideo: {
		"mp4":  {"webm", "gif", "mp3"},
		"avi":  {"mp4", "webm", "gif", "mp3"},
		"mov":  {"mp4", "webm", "gif", "mp3"},
		"mkv":  {"mp4", "webm", "gif", "mp3"},
		"webm": {"mp4", "gif", "mp3"},
		"wmv":  {"mp4", "webm", "mp3"},
		"flv":  {"mp4", "webm", "mp3"},
		"3gp":  {"mp4", "webm", "mp3"},
		"mpeg": {"mp4", "webm", "mp3"},
	},
	CategoryAudio: {
		"mp3":  {"wav", "ogg", "aac"},
		"wav":  {"mp3", "ogg", "aac"},
		"aac":  {"mp3", "wav", "ogg"},
		"ogg":  {"mp3", "wav", "aac"},
		"flac": {"mp3", "wav", "ogg"},
		"wma":  {"mp3", "wav"},
		"m4a":  {"mp3", "wav", "ogg"},
		"aiff": {"mp3", "wav"},
	},
	CategoryArchive: {
		"zip": {"extract"},
		"rar": {"extract"},
		"7z":  {"extract"},
		"tar": {"extract"},
		"gz":  {"extract"},
	},
	CategoryEbook: {
		"epub": {"pdf", "txt"},
		"mobi": {"pdf", "txt"},
	},
}

// recommendations holds the preferred targets keyed by "category.subcategory".
// Entries that are not legal targets are simply never matched.
var recommendations = map[string][]string{
	"image.jpeg":              {"png", "webp"},
	"image.png":               {"jpg", "webp"},
	"image.webp":              {"jpg", "png"},
	"image.bmp":               {"png", "jpg"},
	"image.gif":               {"mp4", "webp"},
	"image.svg":               {"png"},
	"image.heic":              {"jpg"},
	"document.pdf":            {"txt", "jpg", "docx"},
	"document.word":           {"pdf"},
	"document.text":           {"pdf"},
	"document.markdown":       {"html", "pdf"},
	"document.yaml":           {"json"},
	"document.toml":           {"json"},
	"spreadsheet.excel":       {"pdf", "csv"},
	"spreadsheet.csv":         {"json", "xlsx"},
	"presentation.powerpoint": {"pdf"},
	"video.mp4":               {"webm", "gif"},
	"video.avi":               {"mp4"},
	"video.mov":               {"mp4"},
	"audio.wav":               {"mp3"},
	"audio.flac":              {"mp3"},
}

var formatDisplay = map[string]string{
	"jpg": "JPG", "jpeg": "JPEG", "png": "PNG", "gif": "GIF", "webp": "WebP",
	"bmp": "BMP", "svg": "SVG", "tiff": "TIFF", "ico": "ICO", "heic": "HEIC",
	"heif": "HEIF", "avif": "AVIF",
	"pdf": "PDF", "doc": "DOC", "docx": "DOCX", "txt": "TXT", "rtf": "RTF",
	"html": "HTML", "md": "Markdown", "csv": "CSV", "json": "JSON", "xml": "XML",
	"yaml": "YAML", "toml": "TOML", "tsv": "TSV",
	"xls": "XLS", "xlsx": "XLSX", "ppt": "PPT", "pptx": "PPTX",
	"odt": "ODT", "ods": "ODS", "odp": "ODP",
	"mp4": "MP4", "avi": "AVI", "mov": "MOV", "mkv": "MKV", "webm": "WebM",
	"wmv": "WMV", "flv": "FLV", "mpeg": "MPEG",
	"mp3": "MP3", "wav": "WAV", "aac": "AAC", "ogg": "OGG", "flac": "FLAC",
	"wma": "WMA", "m4a": "M4A", "aiff": "AIFF",
	"zip": "ZIP", "rar": "RAR", "7z": "7Z", "tar": "TAR", "gz": "GZ",
	"epub": "ePub", "mobi": "MOBI",
	"extract": "Extract Files",
}

// allSubcategories marks the category-wide operation list.
const allSubcategories Subcategory = "_all"

var operationGraph = map[Category]map[Subcategory][]string{
	CategoryDocument: {
		SubPDF: {"compress", "merge", "split", "rotate", "extract-text", "extract-images"},
	},
	CategoryImage: {
		allSubcategories: {"compress", "resize", "crop", "rotate", "grayscale", "remove-bg"},
	},
	CategoryVideo: {
		allSubcategories: {"compress", "trim", "extract-audio", "to-gif"},
	},
	CategoryAudio: {
		allSubcategories: {"compress", "trim", "merge"},
	},
}

var operationLabels = map[string]string{
	"compress":       "🗜️ Compress",
	"merge":          "🔗 Merge",
	"split":          "✂️ Split",
	"rotate":         "🔄 Rotate",
	"extract-text":   "📝 Extract Text",
	"extract-images": "🖼️ Extract Images",
	"resize":         "📐 Resize",
	"crop":           "✂️ Crop",
	"grayscale":      "⬛ Grayscale",
	"remove-bg":      "🎯 Remove BG",
	"trim":           "✂️ Trim",
	"extract-audio":  "🔊 Extract Audio",
	"to-gif":         "🎬 To GIF",
}

// OptionsFor returns the legal targets for d in declaration order. A
// category or subcategory missing from the graph yields an empty list.
func OptionsFor(d FileTypeDescriptor) []ConversionOption {
	targets := conversionGraph[d.Category][d.Subcategory]
	if len(targets) == 0 {
		return []ConversionOption{}
	}

	preferred := recommendations[string(d.Category)+"."+string(d.Subcategory)]
	opts := make([]ConversionOption, 0, len(targets))
	for _, format := range targets {
		opts = append(opts, ConversionOption{
			Format:        format,
			DisplayName:   DisplayName(format),
			IsRecommended: slices.Contains(preferred, format),
		})
	}
	return opts
}

// DefaultOption picks the option a caller should pre-select: the first
// recommended one in declared order, otherwise the first one.
func DefaultOption(opts []ConversionOption) (ConversionOption, bool) {
	for _, o := range opts {
		if o.IsRecommended {
			return o, true
		}
	}
	if len(opts) > 0 {
		return opts[0], true
	}
	return ConversionOption{}, false
}

// OperationsFor returns the auxiliary operations for d: the
// subcategory-specific list, else the category-wide list, else nothing.
func OperationsFor(d FileTypeDescriptor) []OperationDescriptor {
	byCategory, ok := operationGraph[d.Category]
	if !ok {
		return []OperationDescriptor{}
	}
	ids, ok := byCategory[d.Subcategory]
	if !ok {
		ids = byCategory[allSubcategories]
	}

	ops := make([]OperationDescriptor, 0, len(ids))
	for _, id := range ids {
		label, ok := operationLabels[id]
		if !ok {
			label = id
		}
		ops = append(ops, OperationDescriptor{ID: id, Label: label})
	}
	return ops
}

// DisplayName returns the human label of a format code.
func DisplayName(format string) string {
	if name, ok := formatDisplay[format]; ok {
		return name
	}
	return strings.ToUpper(format)
}
