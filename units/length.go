// Package units implements the `length` value from spec.md §3.3: a
// numeric value plus one of a fixed set of units, with percentages
// deferring their referent resolution to layout, and an arithmetic
// evaluator for calc().
package units

import (
	"math"
	"strconv"
	"strings"
)

// Unit is the length's unit tag. Unit values that accept a `predef`
// keyword enum (border-style, display, ...) do not live here — they
// are interned separately by the style package's keyword tables, per
// spec.md §3.3 ("these collapse to integer tags stored in the same
// slot"); Length itself only models the numeric CSS length space.
type Unit int

const (
	UnitNone Unit = iota
	UnitAuto
	UnitInteger
	UnitPx
	UnitEm
	UnitEx
	UnitPt
	UnitPercent
	UnitIn
	UnitCm
	UnitMm
	UnitVw
	UnitVh
	UnitVmin
	UnitVmax
	UnitRem
	UnitCh
)

// Length is a CSS numeric value carrying its unit. Percentages and
// font-relative units are not resolved at parse time:
// ResolveAgainstWidth/ResolveAgainstHeight take the context needed to
// do so.
type Length struct {
	Value float64
	Unit  Unit
}

// Zero is 0px, the initial value of most box-model lengths.
var Zero = Length{Unit: UnitPx}

// Auto is the `auto` keyword, distinct from 0 for width/height/margin
// resolution.
var Auto = Length{Unit: UnitAuto}

func Px(v float64) Length      { return Length{v, UnitPx} }
func Percent(v float64) Length { return Length{v, UnitPercent} }
func Em(v float64) Length      { return Length{v, UnitEm} }

func (l Length) IsAuto() bool      { return l.Unit == UnitAuto }
func (l Length) IsPercent() bool   { return l.Unit == UnitPercent }
func (l Length) IsNone() bool      { return l.Unit == UnitNone }
func (l Length) IsDefinite() bool  { return l.Unit != UnitAuto && l.Unit != UnitNone }

// Context carries everything needed to resolve a relative length to
// absolute pixels: the referent for percentages (set per property —
// width, line-height, etc. resolve against different referents, so
// the caller picks which of ParentWidth/ParentHeight applies), the
// current and root font metrics, and the viewport size.
type Context struct {
	FontSizePx     float64
	RootFontSizePx float64
	ParentWidthPx  float64
	ParentHeightPx float64
	ViewportWPx    float64
	ViewportHPx    float64
	ChWidthPx      float64
	ExHeightPx     float64
}

// DefaultContext returns a reasonable context for contexts where no
// real font metrics are available yet (e.g. early UA-sheet defaults).
func DefaultContext() Context {
	return Context{
		FontSizePx: 16, RootFontSizePx: 16,
		ParentWidthPx: 0, ParentHeightPx: 0,
		ViewportWPx: 0, ViewportHPx: 0,
		ChWidthPx: 8, ExHeightPx: 8,
	}
}

// ResolveAgainstWidth resolves the length using ParentWidthPx as the
// percentage referent (the common case: width, margin, padding, left/right).
func (l Length) ResolveAgainstWidth(ctx Context) float64 {
	return l.resolve(ctx, ctx.ParentWidthPx)
}

// ResolveAgainstHeight resolves the length using ParentHeightPx as the
// percentage referent (height, top/bottom, vertical margin/padding
// percentages still resolve against the *width* of the containing block
// per CSS2.1 §10.6 for some properties, but callers that want the
// height-relative behavior — e.g. an explicit height percentage when the
// container has a definite height — use this entry point explicitly).
func (l Length) ResolveAgainstHeight(ctx Context) float64 {
	return l.resolve(ctx, ctx.ParentHeightPx)
}

func (l Length) resolve(ctx Context, percentReferent float64) float64 {
	switch l.Unit {
	case UnitPx, UnitInteger:
		return l.Value
	case UnitEm:
		return l.Value * ctx.FontSizePx
	case UnitRem:
		return l.Value * ctx.RootFontSizePx
	case UnitEx:
		return l.Value * ctx.ExHeightPx
	case UnitCh:
		return l.Value * ctx.ChWidthPx
	case UnitPercent:
		return l.Value / 100 * percentReferent
	case UnitVw:
		return l.Value / 100 * ctx.ViewportWPx
	case UnitVh:
		return l.Value / 100 * ctx.ViewportHPx
	case UnitVmin:
		return l.Value / 100 * min(ctx.ViewportWPx, ctx.ViewportHPx)
	case UnitVmax:
		return l.Value / 100 * max(ctx.ViewportWPx, ctx.ViewportHPx)
	case UnitPt:
		return l.Value * 96 / 72
	case UnitCm:
		return l.Value * 96 / 2.54
	case UnitMm:
		return l.Value * 96 / 25.4
	case UnitIn:
		return l.Value * 96
	default:
		return 0
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

var suffixUnits = []struct {
	suffix string
	unit   Unit
}{
	// Longer suffixes first so "rem"/"vmin"/"vmax" don't get shadowed by "em"/"vw"/"vh".
	{"vmin", UnitVmin}, {"vmax", UnitVmax}, {"rem", UnitRem},
	{"px", UnitPx}, {"em", UnitEm}, {"ex", UnitEx}, {"pt", UnitPt},
	{"in", UnitIn}, {"cm", UnitCm}, {"mm", UnitMm},
	{"vw", UnitVw}, {"vh", UnitVh}, {"ch", UnitCh}, {"%", UnitPercent},
}

// Parse parses a single CSS length/percentage/number token such as
// "16px", "1.5em", "10%", "0", or "auto".
func Parse(s string) (Length, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return Length{}, false
	case "auto":
		return Auto, true
	case "none":
		return Length{Unit: UnitNone}, true
	case "0":
		return Zero, true
	}

	for _, su := range suffixUnits {
		if strings.HasSuffix(s, su.suffix) {
			numStr := strings.TrimSuffix(s, su.suffix)
			if numStr == "" {
				continue
			}
			n, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				continue
			}
			return Length{n, su.unit}, true
		}
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n == float64(int64(n)) {
			return Length{n, UnitInteger}, true
		}
		return Length{n, UnitPx}, true
	}
	return Length{}, false
}

// RoundHalfToEven rounds v to the nearest integer, breaking exact .5
// ties to the even neighbor — spec.md §4.5's rule for assigning a
// box's final integer-pixel position.
func RoundHalfToEven(v float64) int {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return int(floor)
	case diff > 0.5:
		return int(floor) + 1
	default:
		if int64(floor)%2 == 0 {
			return int(floor)
		}
		return int(floor) + 1
	}
}
