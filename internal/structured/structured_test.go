package structured

import (
	"strings"
	"testing"
)

func mustJSON(t *testing.T, s string) Value {
	t.Helper()
	v, err := ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON(%q): %v", s, err)
	}
	return v
}

func TestParseJSONKeepsKeyOrder(t *testing.T) {
	v := mustJSON(t, `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50]}`)
	if got := strings.Join(v.Keys(), ","); got != "zeta,alpha,mid" {
		t.Errorf("keys = %s", got)
	}
	want := `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50]}`
	if got := Marshal(v, ""); got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	if _, err := ParseJSON([]byte(`{} {}`)); err == nil {
		t.Error("expected error for two documents")
	}
	if _, err := ParseJSON([]byte(`{"a":`)); err == nil {
		t.Error("expected error for truncated document")
	}
}

func TestMarshalIndented(t *testing.T) {
	v := mustJSON(t, `{"a":[1,{"b":"<c>"}],"e":{},"f":[]}`)
	want := "{\n  \"a\": [\n    1,\n    {\n      \"b\": \"<c>\"\n    }\n  ],\n  \"e\": {},\n  \"f\": []\n}"
	if got := Marshal(v, "  "); got != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		`plain`:       `"plain"`,
		"line\nbreak": `"line\nbreak"`,
		`say "hi"`:    `"say \"hi\""`,
		"bell\x07":    `"bell\u0007"`,
		"café & <b>":  `"café & <b>"`,
	}
	for in, want := range tests {
		if got := Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestToCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "records",
			in:   `[{"name":"Ada","age":36},{"name":"Linus","extra":true}]`,
			want: "name,age\n\"Ada\",36\n\"Linus\",\"\"",
		},
		{
			name: "null cell",
			in:   `[{"a":null}]`,
			want: "a\n\"\"",
		},
		{
			name: "array rows",
			in:   `[["x","y"],["z"]]`,
			want: "0,1\n\"x\",\"y\"\n\"z\",\"\"",
		},
		{
			name: "scalar array",
			in:   `[1,2,3]`,
			want: `[1,2,3]`,
		},
		{
			name: "object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "empty array",
			in:   `[]`,
			want: `[]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCSV(mustJSON(t, tt.in)); got != tt.want {
				t.Errorf("ToCSV = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToXML(t *testing.T) {
	v := mustJSON(t, `{"name":"A & B","tags":["x","y"],"1st":true}`)
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<root>\n" +
		"  <name>A &amp; B</name>\n" +
		"  <item>x</item>\n<item>y</item>\n" +
		"  <_1st>true</_1st>\n" +
		"</root>"
	if got := ToXML(v, "root"); got != want {
		t.Errorf("ToXML =\n%s\nwant\n%s", got, want)
	}
}

func TestToYAML(t *testing.T) {
	v := mustJSON(t, `{"name":"Ada","langs":["go",{"k":1}],"meta":{"ok":false}}`)
	want := "name: \"Ada\"\n" +
		"langs:\n" +
		"  - \"go\"\n" +
		"  -\n" +
		"    k: 1\n" +
		"meta:\n" +
		"  ok: false"
	if got := ToYAML(v); got != want {
		t.Errorf("ToYAML =\n%s\nwant\n%s", got, want)
	}
}

func TestYAMLRoundTripFlat(t *testing.T) {
	in := mustJSON(t, `{"name":"Ada Lovelace","born":1815,"ratio":0.5,"active":true,"note":"a: b"}`)
	back := ParseYAML(ToYAML(in))
	if got, want := Marshal(back, ""), Marshal(in, ""); got != want {
		t.Errorf("round trip = %s, want %s", got, want)
	}
}

func TestParseYAML(t *testing.T) {
	doc := "# comment\nname: 'x'\ncount: 10\nempty:\n: skipped\nflag: false\ncount: 11\n"
	got := Marshal(ParseYAML(doc), "")
	want := `{"name":"x","count":11,"empty":"","flag":false}`
	if got != want {
		t.Errorf("ParseYAML = %s, want %s", got, want)
	}
}

func TestParseTOML(t *testing.T) {
	doc := `title = "demo"
[server]
port = 8080
host = 'localhost'
[db]
enabled = true
list = [1, 2]
`
	got := Marshal(ParseTOML(doc), "")
	want := `{"title":"demo","server":{"port":8080,"host":"localhost"},"db":{"enabled":true,"list":"[1, 2]"}}`
	if got != want {
		t.Errorf("ParseTOML = %s, want %s", got, want)
	}
}

func TestParseCSV(t *testing.T) {
	rows := ParseCSV("\"name\", age\r\nAda,36\r\n\"Linus\"\n")
	got := Marshal(rows, "")
	want := `[{"name":"Ada","age":"36"},{"name":"Linus","age":""}]`
	if got != want {
		t.Errorf("ParseCSV = %s, want %s", got, want)
	}
	if n := len(ParseCSV("only,header").Items); n != 0 {
		t.Errorf("header-only input gave %d rows", n)
	}
}

func TestParseTSV(t *testing.T) {
	got := Marshal(ParseTSV("a\tb\n1\t2\n3"), "")
	want := `[{"a":"1","b":"2"},{"a":"3","b":""}]`
	if got != want {
		t.Errorf("ParseTSV = %s, want %s", got, want)
	}
}

func TestCSVJSONRoundTrip(t *testing.T) {
	csv := "name,city\nAda,London\nGrace,Arlington"
	records := ParseCSV(csv)
	back := ToCSV(records)
	// Cells come back JSON-quoted; parsing strips the quotes again.
	if got := Marshal(ParseCSV(back), ""); got != Marshal(records, "") {
		t.Errorf("round trip = %s", got)
	}
}

func TestScalarCoercion(t *testing.T) {
	tests := map[string]string{
		"42":    "42",
		"1.50":  "1.5",
		"-3":    "-3",
		"1e3":   "1000",
		"inf":   `"inf"`,
		"1_000": `"1_000"`,
		`"42"`:  `"42"`,
		"'q'":   `"q"`,
		"hello": `"hello"`,
		"true":  "true",
		"False": `"False"`,
		`"open`: `"\"open"`,
	}
	for in, want := range tests {
		if got := Marshal(scalar(in), ""); got != want {
			t.Errorf("scalar(%q) = %s, want %s", in, got, want)
		}
	}
}
