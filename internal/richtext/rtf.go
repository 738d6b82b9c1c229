package richtext

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// groups whose content is never document text
var skipDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
	"listtable":  true,
	"themedata":  true,
}

// RTFToText extracts the visible text of an RTF document. Paragraph and line
// controls become newlines, \tab a tab, \'hh escapes are read as Windows-1252
// and \uN escapes as UTF-16 code units. Ignorable destinations ({\*...}) and
// table groups such as the font table are skipped.
func RTFToText(src string) string {
	var (
		out     strings.Builder
		depth   int
		skipAt  = -1 // depth at which skipping started
		pending []uint16
		ucSkip  = 1
	)
	flushUTF16 := func() {
		if len(pending) > 0 {
			out.WriteString(decodeUTF16(pending))
			pending = pending[:0]
		}
	}
	emit := func(s string) {
		if skipAt >= 0 {
			return
		}
		flushUTF16()
		out.WriteString(s)
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			depth++
			if skipAt < 0 && strings.HasPrefix(src[i+1:], `\*`) {
				skipAt = depth
			}
		case '}':
			if skipAt == depth {
				skipAt = -1
			}
			depth--
		case '\r', '\n':
		case '\\':
			if i+1 >= len(src) {
				break
			}
			next := src[i+1]
			switch {
			case next == '\\' || next == '{' || next == '}':
				emit(string(next))
				i++
			case next == '\'':
				if i+3 < len(src) {
					if v, err := strconv.ParseUint(src[i+2:i+4], 16, 8); err == nil {
						dec, _ := charmap.Windows1252.NewDecoder().Bytes([]byte{byte(v)})
						emit(string(dec))
					}
				}
				i += 3
			case isLetter(next):
				j := i + 1
				for j < len(src) && isLetter(src[j]) {
					j++
				}
				word := src[i+1 : j]
				k := j
				if k < len(src) && (src[k] == '-' || isDigit(src[k])) {
					k++
					for k < len(src) && isDigit(src[k]) {
						k++
					}
				}
				param := src[j:k]
				if k < len(src) && src[k] == ' ' {
					k++
				}
				i = k - 1

				if skipDestinations[word] && skipAt < 0 {
					skipAt = depth
					continue
				}
				switch word {
				case "par", "line":
					emit("\n")
				case "tab":
					emit("\t")
				case "uc":
					ucSkip, _ = strconv.Atoi(param)
				case "u":
					if skipAt >= 0 {
						continue
					}
					n, _ := strconv.Atoi(param)
					pending = append(pending, uint16(int16(n)))
					// skip the ANSI substitute characters
					for s := 0; s < ucSkip && i+1 < len(src) && src[i+1] != '\\' && src[i+1] != '}'; s++ {
						i++
					}
				}
			default:
				i++
			}
		default:
			emit(string(c))
		}
	}
	flushUTF16()
	return strings.TrimSpace(out.String())
}

func decodeUTF16(units []uint16) string {
	var b strings.Builder
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u < 0xDC00 && i+1 < len(units) {
			lo := units[i+1]
			b.WriteRune(rune((uint32(u)-0xD800)<<10 + (uint32(lo) - 0xDC00) + 0x10000))
			i++
			continue
		}
		b.WriteRune(rune(u))
	}
	return b.String()
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
