// Package colors implements the web_color value type: parsing from hex,
// rgb()/rgba(), hsl()/hsla(), named colors, and container-resolved
// system-color keywords. Equality is 4-byte identity, as spec.md §3.2
// requires.
package colors

import (
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA value. Two colors are equal iff all four bytes
// match — the zero value (fully-transparent black) is used as both
// "unset" and "transparent"; nothing in this package tells the two
// apart.
type Color struct {
	R, G, B, A uint8
}

// Transparent is fully-transparent black, the initial value of
// background-color and border-color.
var Transparent = Color{0, 0, 0, 0}

// Black is the initial value of `color`.
var Black = Color{0, 0, 0, 255}

// White is pure white, opaque.
var White = Color{255, 255, 255, 255}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// SystemColorResolver is the container callback used to resolve
// system-color keywords (spec.md §6.1 resolve_color). It returns
// "#rrggbb"/"#rrggbbaa" or false if the name is unknown.
type SystemColorResolver func(name string) (string, bool)

// Parse parses a CSS color value. resolver may be nil; when non-nil it is
// consulted for any identifier not recognized as a named CSS color.
func Parse(value string, resolver SystemColorResolver) (Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Color{}, false
	}

	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgb"):
		return parseRGB(v)
	case strings.HasPrefix(v, "hsl"):
		return parseHSL(v)
	}

	if c, ok := namedColors[v]; ok {
		return c, true
	}

	if resolver != nil {
		if hex, ok := resolver(v); ok {
			return parseHex(strings.ToLower(hex))
		}
	}

	return Color{}, false
}

func parseHex(v string) (Color, bool) {
	hex := strings.TrimPrefix(v, "#")
	hexDigit := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		}
		return 0, false
	}
	pair := func(s string) (uint8, bool) {
		hi, ok1 := hexDigit(s[0])
		lo, ok2 := hexDigit(s[1])
		if !ok1 || !ok2 {
			return 0, false
		}
		return hi<<4 | lo, true
	}
	nibble := func(c byte) (uint8, bool) {
		d, ok := hexDigit(c)
		if !ok {
			return 0, false
		}
		return d<<4 | d, true
	}

	switch len(hex) {
	case 3:
		r, ok1 := nibble(hex[0])
		g, ok2 := nibble(hex[1])
		b, ok3 := nibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, false
		}
		return Color{r, g, b, 255}, true
	case 4:
		r, ok1 := nibble(hex[0])
		g, ok2 := nibble(hex[1])
		b, ok3 := nibble(hex[2])
		a, ok4 := nibble(hex[3])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Color{}, false
		}
		return Color{r, g, b, a}, true
	case 6:
		r, ok1 := pair(hex[0:2])
		g, ok2 := pair(hex[2:4])
		b, ok3 := pair(hex[4:6])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, false
		}
		return Color{r, g, b, 255}, true
	case 8:
		r, ok1 := pair(hex[0:2])
		g, ok2 := pair(hex[2:4])
		b, ok3 := pair(hex[4:6])
		a, ok4 := pair(hex[6:8])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Color{}, false
		}
		return Color{r, g, b, a}, true
	}
	return Color{}, false
}

func splitArgs(inner string) []string {
	inner = strings.ReplaceAll(inner, "/", " ")
	inner = strings.ReplaceAll(inner, ",", " ")
	return strings.Fields(inner)
}

func parseComponent(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v * 255 / 100
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseAlphaComponent(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseRGB(v string) (Color, bool) {
	start, end := strings.Index(v, "("), strings.LastIndex(v, ")")
	if start < 0 || end <= start {
		return Color{}, false
	}
	parts := splitArgs(v[start+1 : end])
	if len(parts) < 3 {
		return Color{}, false
	}
	r := clampByte(parseComponent(parts[0]))
	g := clampByte(parseComponent(parts[1]))
	b := clampByte(parseComponent(parts[2]))
	a := uint8(255)
	if len(parts) >= 4 {
		alpha := parseAlphaComponent(parts[3])
		if alpha < 0 {
			alpha = 0
		}
		if alpha > 1 {
			alpha = 1
		}
		a = uint8(alpha * 255)
	}
	return Color{r, g, b, a}, true
}

func parseHSL(v string) (Color, bool) {
	start, end := strings.Index(v, "("), strings.LastIndex(v, ")")
	if start < 0 || end <= start {
		return Color{}, false
	}
	parts := splitArgs(v[start+1 : end])
	if len(parts) < 3 {
		return Color{}, false
	}
	h, _ := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
	h = h / 360
	s := parseAlphaComponent(parts[1])
	l := parseAlphaComponent(parts[2])
	a := 1.0
	if len(parts) >= 4 {
		a = parseAlphaComponent(parts[3])
	}
	r, g, b := hslToRGB(h, s, l)
	return Color{r, g, b, uint8(clamp01(a) * 255)}, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := clampByte(l * 255)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hue := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6.0:
			return p + (q-p)*6*t
		case t < 0.5:
			return q
		case t < 2.0/3.0:
			return p + (q-p)*(2.0/3.0-t)*6
		default:
			return p
		}
	}
	return clampByte(hue(h+1.0/3.0) * 255), clampByte(hue(h) * 255), clampByte(hue(h-1.0/3.0) * 255)
}
