package dom

import (
	"strconv"
	"strings"

	"github.com/arturoeanton/gockore/textutil"
)

// namedEntities is the reachable subset of HTML5 named character
// references (spec.md §4.1 supplement: the full ~2100-entry table is
// out of this budget; numeric references are unbounded and handled
// separately in decodeCharRef). Mirrors litehtml's encode.h table in
// spirit: common markup escapes, Latin-1 accented letters, and the
// symbols CSS/HTML test fixtures actually use.
var namedEntities = map[string]rune{
	"amp": '&', "lt": '<', "gt": '>', "quot": '"', "apos": '\'',
	"nbsp": ' ', "copy": '©', "reg": '®', "trade": '™',
	"mdash": '—', "ndash": '–', "hellip": '…',
	"lsquo": '‘', "rsquo": '’', "ldquo": '“', "rdquo": '”',
	"deg": '°', "plusmn": '±', "times": '×', "divide": '÷',
	"laquo": '«', "raquo": '»', "middot": '·', "bull": '•',
	"dagger": '†', "Dagger": '‡', "permil": '‰',
	"larr": '←', "uarr": '↑', "rarr": '→', "darr": '↓',
	"harr": '↔',
	"sect": '§', "para": '¶', "euro": '€', "pound": '£',
	"cent": '¢', "yen": '¥', "curren": '¤',
	"Aacute": 'Á', "aacute": 'á', "Eacute": 'É', "eacute": 'é',
	"Iacute": 'Í', "iacute": 'í', "Oacute": 'Ó', "oacute": 'ó',
	"Uacute": 'Ú', "uacute": 'ú', "Ntilde": 'Ñ', "ntilde": 'ñ',
	"Agrave": 'À', "agrave": 'à', "Egrave": 'È', "egrave": 'è',
	"ccedil": 'ç', "Ccedil": 'Ç', "uuml": 'ü', "Uuml": 'Ü',
	"ouml": 'ö', "Ouml": 'Ö', "auml": 'ä', "Auml": 'Ä',
	"szlig": 'ß', "aring": 'å', "Aring": 'Å',
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ',
	"pi": 'π', "sigma": 'σ', "omega": 'ω', "infin": '∞',
	"ne": '≠', "le": '≤', "ge": '≥', "asymp": '≈',
	"spades": '♠', "clubs": '♣', "hearts": '♥', "diams": '♦',
}

// decodeCharRef decodes one character reference starting right after
// the '&' at s[pos] and returns the replacement text plus the number
// of bytes consumed from s, including the leading '&' and any
// terminating ';'. ok is false if s[pos:] is not a
// recognized reference, in which case the caller must emit the '&'
// literally and re-scan from pos+1.
func decodeCharRef(s string, pos int) (replacement string, consumed int, ok bool) {
	if pos >= len(s) || s[pos] != '&' {
		return "", 0, false
	}
	rest := s[pos+1:]
	if strings.HasPrefix(rest, "#") {
		numPart := rest[1:]
		hex := false
		if strings.HasPrefix(numPart, "x") || strings.HasPrefix(numPart, "X") {
			hex = true
			numPart = numPart[1:]
		}
		i := 0
		for i < len(numPart) && isNumCharRefDigit(numPart[i], hex) {
			i++
		}
		if i == 0 {
			return "", 0, false
		}
		digits := numPart[:i]
		base := 10
		if hex {
			base = 16
		}
		code, err := strconv.ParseInt(digits, base, 32)
		if err != nil {
			return "", 0, false
		}
		end := 1 + 1 + boolToInt(hex) + i // '&' + '#' + optional 'x' + digits
		consumed = end
		if i < len(numPart) && numPart[i] == ';' {
			consumed++
		}
		r := rune(code)
		if r <= 0 || r > 0x10FFFF || (0xD800 <= r && r <= 0xDFFF) {
			r = 0xFFFD
		}
		return string(textutil.AppendRune(nil, r)), consumed, true
	}

	// Named reference: longest match up to and including an optional ';'.
	i := 0
	for i < len(rest) && isAsciiAlnum(rest[i]) {
		i++
	}
	name := rest[:i]
	if r, found := namedEntities[name]; found {
		consumed = 1 + i
		if i < len(rest) && rest[i] == ';' {
			consumed++
		}
		return string(r), consumed, true
	}
	return "", 0, false
}

func isNumCharRefDigit(c byte, hex bool) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if hex && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
		return true
	}
	return false
}

func isAsciiAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DecodeEntities decodes character references in s, used for text in
// the data state and attribute values (spec.md §4.1). Unrecognized
// '&' sequences pass through unchanged.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '&' {
			if repl, n, ok := decodeCharRef(s, i); ok {
				b.WriteString(repl)
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
