package convertflow

import (
	"slices"
	"testing"
)

func formats(opts []ConversionOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Format
	}
	return out
}

func TestOptionsFor(t *testing.T) {
	tests := []struct {
		filename    string
		formats     []string
		recommended []string
	}{
		{"report.PDF", []string{"txt", "jpg", "png", "docx"}, []string{"txt", "jpg", "docx"}},
		{"photo.png", []string{"jpg", "webp", "bmp", "gif", "pdf", "ico"}, []string{"jpg", "webp"}},
		{"anim.gif", []string{"jpg", "png", "webp", "bmp", "pdf"}, []string{"webp"}},
		{"people.csv", []string{"json", "txt", "html", "xlsx"}, []string{"json", "xlsx"}},
		{"notes.rtf", []string{"pdf", "txt"}, nil},
		{"backup.zip", []string{"extract"}, nil},
		{"data.xyz", []string{}, nil},
		{"letter.odt", []string{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			opts := OptionsFor(Detect(tt.filename, ""))
			if opts == nil {
				t.Fatal("OptionsFor returned nil")
			}
			if got := formats(opts); !slices.Equal(got, tt.formats) {
				t.Errorf("formats = %v, want %v", got, tt.formats)
			}
			var rec []string
			for _, o := range opts {
				if o.IsRecommended {
					rec = append(rec, o.Format)
				}
			}
			if !slices.Equal(rec, tt.recommended) {
				t.Errorf("recommended = %v, want %v", rec, tt.recommended)
			}
		})
	}
}

func TestOptionsDisplayNames(t *testing.T) {
	opts := OptionsFor(Detect("readme.md", ""))
	want := map[string]string{"pdf": "PDF", "html": "HTML", "txt": "TXT"}
	for _, o := range opts {
		if o.DisplayName != want[o.Format] {
			t.Errorf("%s display = %q, want %q", o.Format, o.DisplayName, want[o.Format])
		}
	}
}

func TestDefaultOption(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		ok       bool
	}{
		{"report.pdf", "txt", true},
		{"clip.avi", "mp4", true},
		{"anim.gif", "webp", true},
		{"notes.rtf", "pdf", true},
		{"data.xyz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := DefaultOption(OptionsFor(Detect(tt.filename, "")))
			if ok != tt.ok || got.Format != tt.want {
				t.Errorf("DefaultOption = %q, %v; want %q, %v", got.Format, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOperationsFor(t *testing.T) {
	ids := func(ops []OperationDescriptor) []string {
		out := make([]string, len(ops))
		for i, op := range ops {
			out[i] = op.ID
		}
		return out
	}
	tests := []struct {
		filename string
		want     []string
	}{
		{"report.pdf", []string{"compress", "merge", "split", "rotate", "extract-text", "extract-images"}},
		{"photo.heic", []string{"compress", "resize", "crop", "rotate", "grayscale", "remove-bg"}},
		{"clip.mkv", []string{"compress", "trim", "extract-audio", "to-gif"}},
		{"song.mp3", []string{"compress", "trim", "merge"}},
		{"notes.txt", []string{}},
		{"backup.zip", []string{}},
		{"data.xyz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ops := OperationsFor(Detect(tt.filename, ""))
			if ops == nil {
				t.Fatal("OperationsFor returned nil")
			}
			if got := ids(ops); !slices.Equal(got, tt.want) {
				t.Errorf("operations = %v, want %v", got, tt.want)
			}
			for _, op := range ops {
				if op.Label == "" {
					t.Errorf("%s has no label", op.ID)
				}
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"md":      "Markdown",
		"webp":    "WebP",
		"extract": "Extract Files",
		"foo":     "FOO",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoutesCoverGraph(t *testing.T) {
	routed := []Subcategory{SubPDF, SubText, SubMarkdown, SubHTML, SubJSON, SubXML, SubYAML, SubTOML,
		SubCode, SubWord, SubRichText, SubLaTeX}
	for _, sub := range routed {
		if _, ok := transformFor(FileTypeDescriptor{Category: CategoryDocument, Subcategory: sub}); !ok {
			t.Errorf("document/%s has no transform", sub)
		}
	}
	for _, sub := range []Subcategory{"mp4", "mp3", "zip", "epub"} {
		if _, ok := transformFor(Detect("x."+string(sub), "")); ok {
			t.Errorf("%s should use the fallback", sub)
		}
	}
	if _, ok := transformFor(Detect("x.heic", "")); !ok {
		t.Error("images are routed as a whole category")
	}
}
