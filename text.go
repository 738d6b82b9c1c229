package convertflow

import (
	"bytes"
	"mime"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	textunicode "golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readText decodes the bytes of a textual input to UTF-8. A charset
// parameter on the mime hint wins; otherwise the encoding is detected.
func readText(f File) string {
	data := f.Data
	if cs := charsetOf(f.MIMEType); cs != "" {
		if enc := lookupEncoding(cs); enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(bytes.TrimPrefix(decoded, utf8BOM))
			}
		}
	}
	return decodeWithDetection(data)
}

// charsetOf returns the charset parameter of a mime type, or "".
func charsetOf(mimeType string) string {
	if mimeType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// decodeWithDetection detects the encoding of data and decodes it to UTF-8.
func decodeWithDetection(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	// UTF-16 with a byte order mark is never ambiguous.
	if len(data) >= 2 && (data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF) {
		dec := textunicode.UTF16(textunicode.LittleEndian, textunicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return string(out)
		}
	}

	results, err := chardet.NewTextDetector().DetectAll(data)
	if err != nil || len(results) == 0 {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}

	// chardet often ranks a Latin charset first for CJK input, so every
	// candidate is decoded and the most coherent one wins.
	best, bestScore := "", -1<<31
	for _, r := range results {
		enc := lookupEncoding(r.Charset)
		if enc == nil {
			continue
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		text := string(decoded)
		if score := scoreDecodedText(text, r.Confidence); score > bestScore {
			best, bestScore = text, score
		}
	}
	if best == "" {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return best
}

// commonCJK holds frequent Chinese and Japanese characters. A decoding that
// produces them is far more likely right than one producing rare ideographs.
const commonCJK = "的一是不了人我在有他这中大来上个国到说们为你对生能地下过子" +
	"那要就出会也好开后还事多么然于心可她自之年时发作里如果所成等" +
	"都没把最而又同它种间其信表安正回力长外内动见想用前面天月日学" +
	"方去手电话被从经当意进头起第各名東京大阪田中山本高野村松井川" +
	"口石原林森小下左右男女白黒赤青金木水火土目耳足気入出分切行見" +
	"聞話読書食飲買売使合知思言語文字数百千万円時計色形声音楽歌画" +
	"図体仕事会社員店場所駅道町市区県世界全部物花鳥魚犬猫空海島池" +
	"人民共产党政府国家社主义经济发展改革建设工业农科技术教育文化"

// scoreDecodedText rates how coherent a decoded text looks. Higher is better.
func scoreDecodedText(text string, confidence int) int {
	score := confidence
	for _, r := range text {
		switch {
		case r == '\uFFFD':
			score -= 10
		case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
			score -= 5
		case r >= 0x3040 && r <= 0x30FF, r >= 0xFF00 && r <= 0xFFEF:
			score += 5
		case r >= 0x4E00 && r <= 0x9FFF:
			if strings.ContainsRune(commonCJK, r) {
				score += 5
			} else {
				score++
			}
		case r >= 'A' && r <= 'z':
			score++
		}
	}
	return score
}

// lookupEncoding maps a charset label to its decoder.
func lookupEncoding(charset string) encoding.Encoding {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(charset)) {
	case "utf8", "utf8bom", "ascii", "usascii":
		return textunicode.UTF8
	case "utf16le":
		return textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM)
	case "utf16be":
		return textunicode.UTF16(textunicode.BigEndian, textunicode.IgnoreBOM)
	case "iso88591", "latin1":
		return charmap.ISO8859_1
	case "iso88592":
		return charmap.ISO8859_2
	case "iso88595":
		return charmap.ISO8859_5
	case "iso88597":
		return charmap.ISO8859_7
	case "iso88599":
		return charmap.ISO8859_9
	case "iso885915":
		return charmap.ISO8859_15
	case "windows1250", "cp1250":
		return charmap.Windows1250
	case "windows1251", "cp1251":
		return charmap.Windows1251
	case "windows1252", "cp1252":
		return charmap.Windows1252
	case "koi8r":
		return charmap.KOI8R
	case "shiftjis", "sjis", "cp932", "windows31j":
		return japanese.ShiftJIS
	case "eucjp":
		return japanese.EUCJP
	case "iso2022jp":
		return japanese.ISO2022JP
	case "euckr", "cp949":
		return korean.EUCKR
	case "gb2312", "gbk", "cp936", "gb18030":
		return simplifiedchinese.GBK
	case "big5", "cp950":
		return traditionalchinese.Big5
	}
	return nil
}

var (
	reTrailingWhitespace = regexp.MustCompile(`[ \t]+\n`)
	reMultipleNewlines   = regexp.MustCompile(`\n{3,}`)
)

// cleanExtracted tidies text pulled out of a binary container: LF line
// endings, no control characters, no trailing blanks, at most one empty
// line in a row.
func cleanExtracted(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = reTrailingWhitespace.ReplaceAllString(s+"\n", "\n")
	s = reMultipleNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
