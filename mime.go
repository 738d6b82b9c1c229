package convertflow

import (
	"github.com/gabriel-vasile/mimetype"
)

const mimeOctetStream = "application/octet-stream"

// formatMIME maps a target format code to the mime type of the artifact.
var formatMIME = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"svg":  "image/svg+xml",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
	"ico":  "image/x-icon",
	"avif": "image/avif",

	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"html": "text/html",
	"md":   "text/markdown",
	"rtf":  "application/rtf",
	"csv":  "text/csv",
	"tsv":  "text/tab-separated-values",
	"json": "application/json",
	"xml":  "application/xml",
	"yaml": "text/yaml",
	"toml": "text/plain",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"epub": "application/epub+zip",
	"mobi": "application/x-mobipocket-ebook",

	"mp4":  "video/mp4",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"mkv":  "video/x-matroska",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"aac":  "audio/aac",
	"flac": "audio/flac",
	"m4a":  "audio/mp4",

	"zip": "application/zip",
	"tar": "application/x-tar",
	"gz":  "application/gzip",
	"7z":  "application/x-7z-compressed",
}

// mimeForFormat returns the mime type for a format code.
func mimeForFormat(format string) string {
	if m, ok := formatMIME[format]; ok {
		return m
	}
	return mimeOctetStream
}

// SniffMIME detects a mime type from content, falling back to the
// extension table when the content is not recognised.
func SniffMIME(data []byte, filename string) string {
	m := mimetype.Detect(data)
	if m != nil && !m.Is(mimeOctetStream) && !m.Is("text/plain") {
		return m.String()
	}
	if known, ok := formatMIME[extensionOf(filename)]; ok {
		return known
	}
	if m != nil {
		return m.String()
	}
	return mimeOctetStream
}

// isSVG reports whether an input is an SVG document, trusting the hint or
// the extension before sniffing content.
func isSVG(f File) bool {
	if f.MIMEType == "image/svg+xml" || extensionOf(f.Name) == "svg" {
		return true
	}
	return mimetype.Detect(f.Data).Is("image/svg+xml")
}
