// Package structured converts between the tree-shaped text formats the
// engine handles (JSON, XML, YAML, TOML and delimited tables). Every
// conversion keeps object keys in the order they were read.
package structured

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Value is one node of a decoded document. Only the fields matching Kind
// are meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Num    string // literal, as read
	Str    string
	Items  []Value
	Fields []Field
}

// Field is one key of an Object.
type Field struct {
	Key   string
	Value Value
}

// Constructors.

func NullValue() Value           { return Value{Kind: Null} }
func BoolValue(b bool) Value     { return Value{Kind: Bool, Bool: b} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func NumberValue(lit string) Value {
	return Value{Kind: Number, Num: lit}
}
func ArrayValue(items ...Value) Value { return Value{Kind: Array, Items: items} }
func ObjectValue(fields ...Field) Value {
	return Value{Kind: Object, Fields: fields}
}

// Keys returns the keys of an Object in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Get looks up key in an Object.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set assigns key, replacing an existing entry in place or appending.
func (v *Value) Set(key string, val Value) {
	for i := range v.Fields {
		if v.Fields[i].Key == key {
			v.Fields[i].Value = val
			return
		}
	}
	v.Fields = append(v.Fields, Field{Key: key, Value: val})
}

// IsContainer reports whether v is an Array or an Object.
func (v Value) IsContainer() bool {
	return v.Kind == Array || v.Kind == Object
}

// String renders a scalar the way it reads in prose: strings unquoted,
// null as "null". Containers render as compact JSON.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Number:
		return v.Num
	case String:
		return v.Str
	default:
		return Marshal(v, "")
	}
}

// ParseJSON decodes one JSON document.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("parse json: trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := Value{Kind: Array, Items: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr.Items = append(arr.Items, item)
			}
			_, err := dec.Token()
			return arr, err
		case '{':
			obj := Value{Kind: Object, Fields: []Field{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			_, err := dec.Token()
			return obj, err
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// Marshal encodes v as JSON. An empty indent yields the compact form;
// otherwise nested levels are indented by one more copy of indent each.
func Marshal(v Value, indent string) string {
	var b strings.Builder
	writeJSON(&b, v, indent, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, v Value, indent string, depth int) {
	newline := func(d int) {
		if indent == "" {
			return
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(indent, d))
	}
	colon := ":"
	if indent != "" {
		colon = ": "
	}

	switch v.Kind {
	case Array:
		if len(v.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(depth + 1)
			writeJSON(b, item, indent, depth+1)
		}
		newline(depth)
		b.WriteByte(']')
	case Object:
		if len(v.Fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(depth + 1)
			b.WriteString(Quote(f.Key))
			b.WriteString(colon)
			writeJSON(b, f.Value, indent, depth+1)
		}
		newline(depth)
		b.WriteByte('}')
	case String:
		b.WriteString(Quote(v.Str))
	default:
		b.WriteString(v.String())
	}
}

// Quote returns s as a JSON string literal. Only quotes, backslashes and
// control characters are escaped; markup characters and non-ASCII text
// pass through.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// scalar coerces a bare value from a line-oriented config format: true,
// false and finite numbers become typed; a value wrapped in matching quotes
// loses them; anything else stays a string.
func scalar(s string) Value {
	switch s {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	if s != "" && !strings.ContainsRune(s, '_') {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return NumberValue(formatNumber(f))
		}
	}
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return StringValue(s[1 : len(s)-1])
	}
	return StringValue(s)
}

// formatNumber writes f in its shortest round-trip decimal form.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
