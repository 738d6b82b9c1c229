package convertflow

import (
	"slices"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename    string
		category    Category
		subcategory Subcategory
		label       string
		ext         string
		confidence  float64
	}{
		{"report.PDF", CategoryDocument, SubPDF, "PDF", "pdf", 0.95},
		{"photo.jpeg", CategoryImage, "jpeg", "JPEG Image", "jpeg", 0.95},
		{"backup.tar.gz", CategoryArchive, "gz", "GZip Archive", "gz", 0.95},
		{"main.go", CategoryDocument, SubCode, "Source Code", "go", 0.95},
		{"people.tsv", CategorySpreadsheet, SubTSV, "TSV", "tsv", 0.95},
		{"slides.odp", CategoryPresentation, SubOpenDocument, "OpenDocument Presentation", "odp", 0.95},
		{"Makefile", CategoryOther, "unknown", "Unknown File", "", 0.5},
		{"data.xyz", CategoryOther, "xyz", "XYZ File", "xyz", 0.5},
		{"trailing.", CategoryOther, "unknown", "Unknown File", "", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			d := Detect(tt.filename, "")
			if d.Category != tt.category || d.Subcategory != tt.subcategory {
				t.Errorf("type = %s/%s, want %s/%s", d.Category, d.Subcategory, tt.category, tt.subcategory)
			}
			if d.Label != tt.label {
				t.Errorf("label = %q, want %q", d.Label, tt.label)
			}
			if d.Extension != tt.ext {
				t.Errorf("extension = %q, want %q", d.Extension, tt.ext)
			}
			if d.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", d.Confidence, tt.confidence)
			}
		})
	}
}

func TestDetectKeepsMIMEHint(t *testing.T) {
	if d := Detect("a.png", "image/png"); d.MIMEHint != "image/png" {
		t.Errorf("MIMEHint = %q", d.MIMEHint)
	}
}

func TestOptionsForNeverNil(t *testing.T) {
	for ext := range typeCatalog {
		d := Detect("file."+ext, "")
		opts := OptionsFor(d)
		if opts == nil {
			t.Errorf("%s: OptionsFor returned nil", ext)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5120 GB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.n); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestReplaceExtension(t *testing.T) {
	tests := []struct{ name, ext, want string }{
		{"report.pdf", "txt", "report.txt"},
		{"archive.tar.gz", "zip", "archive.tar.zip"},
		{"README", "md", "README.md"},
		{".env", "json", ".env.json"},
	}
	for _, tt := range tests {
		if got := replaceExtension(tt.name, tt.ext); got != tt.want {
			t.Errorf("replaceExtension(%q, %q) = %q, want %q", tt.name, tt.ext, got, tt.want)
		}
	}
}

func TestCodeExtensionsInCatalog(t *testing.T) {
	for _, ext := range codeExtensions {
		if typeCatalog[ext].subcategory != SubCode {
			t.Errorf("%s not registered as code", ext)
		}
	}
	if !slices.Contains(codeExtensions, "py") {
		t.Error("python missing from code extensions")
	}
}
