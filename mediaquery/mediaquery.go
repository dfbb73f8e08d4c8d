// Package mediaquery evaluates an @media condition string against the
// container's reported media features (spec.md §4.2/§6.1), so
// cssom.MediaRule blocks can be filtered before style.Compile sees
// them. Only the media features container.MediaFeatures exposes are
// supported: type, width/height, device-width/device-height, color,
// monochrome, color-index, resolution. prefers-* and other
// newer features are not modeled (no field for them exists on the
// container contract), so a condition naming one simply never matches.
package mediaquery

import (
	"strconv"
	"strings"

	"github.com/arturoeanton/gockore/container"
)

// Matches reports whether condition (the text between "@media" and the
// rule's opening brace, e.g. "screen and (min-width: 600px)") holds
// against the given features.
func Matches(condition string, f container.MediaFeatures) bool {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true
	}
	for _, orClause := range splitTopLevel(condition, ",") {
		if matchesAndClause(orClause, f) {
			return true
		}
	}
	return false
}

func matchesAndClause(clause string, f container.MediaFeatures) bool {
	terms := splitTopLevel(clause, " and ")
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !matchesTerm(t, f) {
			return false
		}
	}
	return true
}

func matchesTerm(term string, f container.MediaFeatures) bool {
	negate := false
	lower := strings.ToLower(term)
	if strings.HasPrefix(lower, "not ") {
		negate = true
		term = strings.TrimSpace(term[4:])
		lower = strings.ToLower(term)
	}
	if strings.HasPrefix(lower, "only ") {
		term = strings.TrimSpace(term[5:])
		lower = strings.ToLower(term)
	}

	var result bool
	switch {
	case strings.HasPrefix(term, "("):
		result = matchesFeature(strings.Trim(term, "()"), f)
	case lower == "screen" || lower == "all":
		result = true
	case lower == "print" || lower == "speech":
		result = f.Type == lower
	default:
		result = f.Type == lower
	}
	if negate {
		return !result
	}
	return result
}

func matchesFeature(expr string, f container.MediaFeatures) bool {
	parts := strings.SplitN(expr, ":", 2)
	name := strings.TrimSpace(strings.ToLower(parts[0]))
	if len(parts) == 1 {
		// Boolean feature test, e.g. "(color)" or "(monochrome)".
		return boolFeature(name, f)
	}
	value := strings.TrimSpace(parts[1])

	switch name {
	case "width":
		return numEq(value, float64(f.Width))
	case "min-width":
		return numCmp(value, float64(f.Width)) <= 0
	case "max-width":
		return numCmp(value, float64(f.Width)) >= 0
	case "height":
		return numEq(value, float64(f.Height))
	case "min-height":
		return numCmp(value, float64(f.Height)) <= 0
	case "max-height":
		return numCmp(value, float64(f.Height)) >= 0
	case "device-width":
		return numEq(value, float64(f.DeviceWidth))
	case "min-device-width":
		return numCmp(value, float64(f.DeviceWidth)) <= 0
	case "max-device-width":
		return numCmp(value, float64(f.DeviceWidth)) >= 0
	case "device-height":
		return numEq(value, float64(f.DeviceHeight))
	case "min-device-height":
		return numCmp(value, float64(f.DeviceHeight)) <= 0
	case "max-device-height":
		return numCmp(value, float64(f.DeviceHeight)) >= 0
	case "color":
		return numEq(value, float64(f.Color))
	case "min-color":
		return numCmp(value, float64(f.Color)) <= 0
	case "monochrome":
		return numEq(value, float64(f.Monochrome))
	case "color-index":
		return numEq(value, float64(f.ColorIndex))
	case "resolution":
		return numEq(stripResolutionUnit(value), f.ResolutionDPI)
	case "min-resolution":
		return numCmp(stripResolutionUnit(value), f.ResolutionDPI) <= 0
	case "max-resolution":
		return numCmp(stripResolutionUnit(value), f.ResolutionDPI) >= 0
	case "orientation":
		landscape := f.Width >= f.Height
		if value == "landscape" {
			return landscape
		}
		return !landscape
	default:
		return false
	}
}

func boolFeature(name string, f container.MediaFeatures) bool {
	switch name {
	case "color":
		return f.Color > 0
	case "monochrome":
		return f.Monochrome > 0
	case "color-index":
		return f.ColorIndex > 0
	default:
		return false
	}
}

func stripResolutionUnit(v string) string {
	v = strings.TrimSpace(v)
	for _, suf := range []string{"dpi", "dpcm", "dppx"} {
		if strings.HasSuffix(v, suf) {
			return strings.TrimSuffix(v, suf)
		}
	}
	return v
}

func numEq(valueWithUnit string, actual float64) bool {
	n, ok := parseNum(valueWithUnit)
	return ok && n == actual
}

// numCmp parses valueWithUnit (stripping a trailing "px" if present)
// and returns -1/0/1 as the parsed value is less than, equal to, or
// greater than actual, for min-/max- terms (min- holds at <= 0, max-
// at >= 0).
func numCmp(valueWithUnit string, actual float64) int {
	n, ok := parseNum(valueWithUnit)
	if !ok {
		return 0
	}
	switch {
	case n < actual:
		return -1
	case n > actual:
		return 1
	default:
		return 0
	}
}

func parseNum(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(s, "px"))
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// splitTopLevel splits s on every occurrence of sep that isn't nested
// inside parentheses, so "(min-width: 1px) and (max-width: 2px)"
// doesn't get split on an "and" that happens to appear in a feature name.
func splitTopLevel(s, sep string) []string {
	var out []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i+len(sep) <= len(s) && strings.EqualFold(s[i:i+len(sep)], sep) {
			out = append(out, s[start:i])
			i += len(sep)
			start = i
			continue
		}
		i++
	}
	out = append(out, s[start:])
	return out
}
