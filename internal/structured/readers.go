package structured

import "strings"

// ParseYAML reads the flat subset of YAML: one "key: value" pair per line.
// Blank lines and # comments are skipped, lines without a colon after the
// first character are ignored, and values are coerced with the usual
// true/false/number/quoted rules. Nesting is not interpreted; an indented
// line is read as another top-level pair.
func ParseYAML(text string) Value {
	out := ObjectValue()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, ":")
		if i <= 0 {
			continue
		}
		out.Set(strings.TrimSpace(line[:i]), scalar(strings.TrimSpace(line[i+1:])))
	}
	return out
}

// ParseTOML reads "[section]" headers and "key = value" pairs. Keys before
// the first header land at the top level; a repeated header starts the
// section over. Arrays, inline tables and dotted keys are kept as strings.
func ParseTOML(text string) Value {
	out := ObjectValue()
	section := -1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])
			out.Set(name, ObjectValue())
			for i, f := range out.Fields {
				if f.Key == name {
					section = i
				}
			}
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key, val := strings.TrimSpace(line[:i]), scalar(strings.TrimSpace(line[i+1:]))
		if section < 0 {
			out.Set(key, val)
			continue
		}
		out.Fields[section].Value.Set(key, val)
	}
	return out
}

// ParseCSV splits comma-separated text into records keyed by the header
// line. Splitting is naive: quoted commas are not honoured, and one pair
// of surrounding quotes is stripped from every cell. Fewer than two lines
// yields no records. Missing cells are empty strings.
func ParseCSV(text string) Value {
	return parseDelimited(text, ",", true)
}

// ParseTSV is ParseCSV for tab-separated text. A header line alone yields
// no records; cells keep any quotes.
func ParseTSV(text string) Value {
	return parseDelimited(text, "\t", false)
}

func parseDelimited(text, sep string, unquote bool) Value {
	rows := ArrayValue()
	rows.Items = []Value{}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if unquote && len(lines) < 2 {
		return rows
	}
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		if unquote {
			s = strings.TrimPrefix(s, `"`)
			s = strings.TrimSuffix(s, `"`)
		}
		return s
	}

	headers := strings.Split(lines[0], sep)
	for i := range headers {
		headers[i] = clean(headers[i])
	}
	for _, line := range lines[1:] {
		cells := strings.Split(line, sep)
		rec := ObjectValue()
		for i, h := range headers {
			cell := ""
			if i < len(cells) {
				cell = clean(cells[i])
			}
			rec.Set(h, StringValue(cell))
		}
		rows.Items = append(rows.Items, rec)
	}
	return rows
}

// Headers returns the key list of the first record, or nil.
func Headers(records Value) []string {
	if records.Kind != Array || len(records.Items) == 0 {
		return nil
	}
	return records.Items[0].Keys()
}
