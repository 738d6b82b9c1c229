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
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	knownConfidence   = 0.95
	unknownConfidence = 0.5
)

type typeEntry struct {
	category    Category
	subcategory Subcategory
	label       string
	icon        string
}

// typeCatalog maps a lower-case extension (no dot) to its type.
var typeCatalog = map[string]typeEntry{
	// Documents
	"pdf":      {CategoryDocument, SubPDF, "PDF", "PDF"},
	"doc":      {CategoryDocument, SubWord, "Word Document", "DOC"},
	"docx":     {CategoryDocument, SubWord, "Word Document", "DOCX"},
	"txt":      {CategoryDocument, SubText, "Plain Text", "TXT"},
	"rtf":      {CategoryDocument, SubRichText, "Rich Text", "RTF"},
	"odt":      {CategoryDocument, SubOpenDocument, "OpenDocument Text", "ODT"},
	"html":     {CategoryDocument, SubHTML, "HTML", "HTML"},
	"htm":      {CategoryDocument, SubHTML, "HTML", "HTML"},
	"md":       {CategoryDocument, SubMarkdown, "Markdown", "MD"},
	"markdown": {CategoryDocument, SubMarkdown, "Markdown", "MD"},
	"json":     {CategoryDocument, SubJSON, "JSON", "JSON"},
	"xml":      {CategoryDocument, SubXML, "XML", "XML"},
	"yaml":     {CategoryDocument, SubYAML, "YAML", "YAML"},
	"yml":      {CategoryDocument, SubYAML, "YAML", "YML"},
	"toml":     {CategoryDocument, SubTOML, "TOML", "TOML"},
	"tex":      {CategoryDocument, SubLaTeX, "LaTeX", "TEX"},

	// Spreadsheets
	"xls":  {CategorySpreadsheet, SubExcel, "Excel Spreadsheet", "XLS"},
	"xlsx": {CategorySpreadsheet, SubExcel, "Excel Spreadsheet", "XLSX"},
	"ods":  {CategorySpreadsheet, SubOpenDocument, "OpenDocument Spreadsheet", "ODS"},
	"csv":  {CategorySpreadsheet, SubCSV, "CSV", "CSV"},
	"tsv":  {CategorySpreadsheet, SubTSV, "TSV", "TSV"},

	// Presentations
	"ppt":  {CategoryPresentation, "powerpoint", "PowerPoint", "PPT"},
	"pptx": {CategoryPresentation, "powerpoint", "PowerPoint", "PPTX"},
	"odp":  {CategoryPresentation, SubOpenDocument, "OpenDocument Presentation", "ODP"},

	// eBooks
	"epub": {CategoryEbook, "epub", "ePub", "EPUB"},
	"mobi": {CategoryEbook, "mobi", "MOBI", "MOBI"},

	// Images
	"jpg":  {CategoryImage, "jpeg", "JPEG Image", "JPG"},
	"jpeg": {CategoryImage, "jpeg", "JPEG Image", "JPG"},
	"png":  {CategoryImage, "png", "PNG Image", "PNG"},
	"gif":  {CategoryImage, "gif", "GIF", "GIF"},
	"webp": {CategoryImage, "webp", "WebP Image", "WEBP"},
	"bmp":  {CategoryImage, "bmp", "BMP Image", "BMP"},
	"svg":  {CategoryImage, "svg", "SVG", "SVG"},
	"tiff": {CategoryImage, "tiff", "TIFF Image", "TIFF"},
	"tif":  {CategoryImage, "tiff", "TIFF Image", "TIFF"},
	"ico":  {CategoryImage, "ico", "Icon", "ICO"},
	"heic": {CategoryImage, "heic", "HEIC Image", "HEIC"},
	"heif": {CategoryImage, "heif", "HEIF Image", "HEIF"},
	"avif": {CategoryImage, "avif", "AVIF Image", "AVIF"},

	// Video
	"mp4":  {CategoryVideo, "mp4", "MP4 Video", "MP4"},
	"avi":  {CategoryVideo, "avi", "AVI Video", "AVI"},
	"mov":  {CategoryVideo, "mov", "MOV Video", "MOV"},
	"mkv":  {CategoryVideo, "mkv", "MKV Video", "MKV"},
	"webm": {CategoryVideo, "webm", "WebM Video", "WEBM"},
	"wmv":  {CategoryVideo, "wmv", "WMV Video", "WMV"},
	"flv":  {CategoryVideo, "flv", "FLV Video", "FLV"},
	"3gp":  {CategoryVideo, "3gp", "3GP Video", "3GP"},
	"mpeg": {CategoryVideo, "mpeg", "MPEG Video", "MPEG"},
	"mpg":  {CategoryVideo, "mpeg", "MPEG Video", "MPG"},

	// Audio
	"mp3":  {CategoryAudio, "mp3", "MP3 Audio", "MP3"},
	"wav":  {CategoryAudio, "wav", "WAV Audio", "WAV"},
	"aac":  {CategoryAudio, "aac", "AAC Audio", "AAC"},
	"ogg":  {CategoryAudio, "ogg", "OGG Audio", "OGG"},
	"flac": {CategoryAudio, "flac", "FLAC Audio", "FLAC"},
	"wma":  {CategoryAudio, "wma", "WMA Audio", "WMA"},
	"m4a":  {CategoryAudio, "m4a", "M4A Audio", "M4A"},
	"aiff": {CategoryAudio, "aiff", "AIFF Audio", "AIFF"},

	// Archives
	"zip": {CategoryArchive, "zip", "ZIP Archive", "ZIP"},
	"rar": {CategoryArchive, "rar", "RAR Archive", "RAR"},
	"7z":  {CategoryArchive, "7z", "7-Zip Archive", "7Z"},
	"tar": {CategoryArchive, "tar", "TAR Archive", "TAR"},
	"gz":  {CategoryArchive, "gz", "GZip Archive", "GZ"},
}

// codeExtensions are source files handled by the code transform.
var codeExtensions = []string{
	"go", "js", "ts", "jsx", "tsx", "py", "java", "c", "h", "cpp", "hpp", "cs",
	"rs", "rb", "php", "sh", "swift", "kt", "sql", "css", "scss", "lua", "pl", "r", "scala",
}

func init() {
	for _, ext := range codeExtensions {
		typeCatalog[ext] = typeEntry{CategoryDocument, SubCode, "Source Code", strings.ToUpper(ext)}
	}
}

// Detect classifies a file by its extension. It never fails: unknown
// extensions degrade to the "other" category with a lower confidence.
func Detect(filename, mimeHint string) FileTypeDescriptor {
	ext := extensionOf(filename)
	if entry, ok := typeCatalog[ext]; ok {
		return FileTypeDescriptor{
			Category:    entry.category,
			Subcategory: entry.subcategory,
			Label:       entry.label,
			Icon:        entry.icon,
			Extension:   ext,
			MIMEHint:    mimeHint,
			Confidence:  knownConfidence,
		}
	}

	d := FileTypeDescriptor{
		Category:    CategoryOther,
		Subcategory: "unknown",
		Label:       "Unknown File",
		Icon:        "?",
		Extension:   ext,
		MIMEHint:    mimeHint,
		Confidence:  unknownConfidence,
	}
	if ext != "" {
		d.Subcategory = Subcategory(ext)
		d.Label = strings.ToUpper(ext) + " File"
		d.Icon = strings.ToUpper(ext)
	}
	return d
}

// extensionOf returns the lower-cased text after the last dot, or "".
func extensionOf(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// FormatFileSize renders a byte count as "12.3 KB" style text.
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	sizes := []string{"B", "KB", "MB", "GB"}
	i, unit := 0, int64(1)
	for i < len(sizes)-1 && n >= unit*1024 {
		unit *= 1024
		i++
	}
	v := float64(n) / float64(unit)
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + " " + sizes[i]
}

// sizeKB formats a byte count the way placeholder artifacts report it.
func sizeKB(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
