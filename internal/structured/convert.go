package structured

import (
	"strconv"
	"strings"
)

// ToCSV flattens an array of records into comma-separated text. The header
// is the key list of the first record; every cell is the JSON encoding of
// the record's value, "" when missing or null. Anything that is not a
// non-empty array of records is returned as compact JSON.
func ToCSV(v Value) string {
	if v.Kind != Array || len(v.Items) == 0 || !v.Items[0].IsContainer() {
		return Marshal(v, "")
	}
	headers := recordKeys(v.Items[0])

	lines := make([]string, 0, len(v.Items)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, row := range v.Items {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cell, ok := lookup(row, h)
			if !ok || cell.Kind == Null {
				cell = StringValue("")
			}
			cells[i] = Marshal(cell, "")
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

// recordKeys lists an object's keys or an array's indexes.
func recordKeys(v Value) []string {
	if v.Kind == Object {
		return v.Keys()
	}
	keys := make([]string, len(v.Items))
	for i := range v.Items {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

func lookup(v Value, key string) (Value, bool) {
	switch v.Kind {
	case Object:
		return v.Get(key)
	case Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(v.Items) {
			return Value{}, false
		}
		return v.Items[i], true
	}
	return Value{}, false
}

// ToXML renders v under an XML declaration. Objects become elements whose
// children are indented two spaces; array items are emitted as sibling
// <item> elements; scalars are escaped text.
func ToXML(v Value, root string) string {
	return "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" + xmlNode(v, root)
}

func xmlNode(v Value, tag string) string {
	tag = ElementName(tag)
	switch v.Kind {
	case Array:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = xmlNode(item, "item")
		}
		return strings.Join(parts, "\n")
	case Object:
		children := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			children[i] = "  " + xmlNode(f.Value, f.Key)
		}
		return "<" + tag + ">\n" + strings.Join(children, "\n") + "\n</" + tag + ">"
	default:
		return "<" + tag + ">" + EscapeText(v.String()) + "</" + tag + ">"
	}
}

// ElementName makes key usable as an XML element name: characters outside
// letters, digits, '-', '_' and '.' become '_', and a name that does not
// start with a letter or '_' gets a '_' prefix.
func ElementName(key string) string {
	if key == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range key {
		ok := r == '_' || r == '-' || r == '.' || r >= '0' && r <= '9' ||
			r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f
		if !ok {
			r = '_'
		}
		if i == 0 && (r == '-' || r == '.' || r >= '0' && r <= '9') {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// EscapeText escapes &, <, > and " for element content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// ToYAML renders v as block YAML. Sequence items are "- value"; a nested
// container item opens with a bare "-" and continues one level deeper.
// Scalars are written as JSON literals, which YAML accepts.
func ToYAML(v Value) string {
	return yamlNode(v, 0)
}

func yamlNode(v Value, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch v.Kind {
	case Array:
		lines := make([]string, len(v.Items))
		for i, item := range v.Items {
			if item.IsContainer() {
				lines[i] = pad + "-\n" + yamlNode(item, depth+1)
				continue
			}
			lines[i] = pad + "- " + Marshal(item, "")
		}
		return strings.Join(lines, "\n")
	case Object:
		lines := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			if f.Value.IsContainer() {
				lines[i] = pad + f.Key + ":\n" + yamlNode(f.Value, depth+1)
				continue
			}
			lines[i] = pad + f.Key + ": " + Marshal(f.Value, "")
		}
		return strings.Join(lines, "\n")
	default:
		return pad + Marshal(v, "")
	}
}
