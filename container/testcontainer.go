package container

import (
	"fmt"

	"github.com/arturoeanton/gockore/colors"
)

// TestContainer is a headless Container backend for tests: it answers
// every query with deterministic synthetic metrics and records every
// draw/clip call instead of painting anything, grounded on litehtml's
// test_container (a fixed-metrics, no-op-drawing harness used across
// its own test suite).
type TestContainer struct {
	Width, Height int

	// Calls records font creation/deletion, image loads, every draw and
	// clip call, and the host notifications (anchor click, cursor,
	// caption) in order, so tests can assert both content (what was
	// drawn) and ordering (clip balance, paint order). Metric and media
	// queries such as TextWidth are not recorded.
	Calls []string

	clipDepth int

	CharWidthPx float64
}

// NewTestContainer returns a container with the given viewport and a
// monospace-like fixed character width (8px), matching litehtml's test
// fixture font metrics closely enough for layout assertions.
func NewTestContainer(width, height int) *TestContainer {
	return &TestContainer{Width: width, Height: height, CharWidthPx: 8}
}

type testFontHandle struct {
	SizePx float64
	Weight int
	Italic bool
}

func (t *TestContainer) CreateFont(d FontDescriptor) (FontHandle, FontMetrics) {
	t.Calls = append(t.Calls, fmt.Sprintf("create_font(%v,%v)", d.SizePx, d.Weight))
	h := testFontHandle{SizePx: d.SizePx, Weight: d.Weight, Italic: d.Italic}
	fm := FontMetrics{
		Ascent:  d.SizePx * 0.8,
		Descent: d.SizePx * 0.2,
		Height:  d.SizePx * 1.2,
		XHeight: d.SizePx * 0.5,
		ChWidth: t.CharWidthPx,
	}
	return h, fm
}

func (t *TestContainer) DeleteFont(h FontHandle) {
	t.Calls = append(t.Calls, "delete_font")
}

// TextWidth approximates each rune as CharWidthPx wide — litehtml's
// test_container does the equivalent with a fixed per-character
// advance so layout math in tests is a simple multiplication.
func (t *TestContainer) TextWidth(h FontHandle, utf8Text string) float64 {
	n := 0
	for range utf8Text {
		n++
	}
	return float64(n) * t.CharWidthPx
}

func (t *TestContainer) DrawText(hdc any, utf8Text string, h FontHandle, color colors.Color, rect Rect) {
	t.Calls = append(t.Calls, fmt.Sprintf("draw_text(%q,%v)", utf8Text, rect))
}

func (t *TestContainer) PtToPx(pt float64) float64     { return pt * 96 / 72 }
func (t *TestContainer) DefaultFontName() string       { return "sans-serif" }
func (t *TestContainer) DefaultFontSizePx() float64    { return 16 }

func (t *TestContainer) LoadImage(src, baseURL string, redrawOnReady bool) {
	t.Calls = append(t.Calls, "load_image:"+src)
}

// GetImageSize always reports zero — "present but of zero dimensions"
// per spec.md §7's missing-resource handling, which is what a test
// container with no real decoder should report.
func (t *TestContainer) GetImageSize(src, baseURL string) (int, int) { return 0, 0 }

func (t *TestContainer) DrawImage(hdc any, layer int, url, baseURL string, rect Rect) {
	t.Calls = append(t.Calls, fmt.Sprintf("draw_image(%s,%v)", url, rect))
}

func (t *TestContainer) DrawSolidFill(hdc any, rect Rect, radii Radii, c colors.Color) {
	t.Calls = append(t.Calls, fmt.Sprintf("draw_solid_fill(%v)", rect))
}
func (t *TestContainer) DrawLinearGradient(hdc any, rect Rect, radii Radii, stops []GradientStop, angleDeg float64) {
	t.Calls = append(t.Calls, "draw_linear_gradient")
}
func (t *TestContainer) DrawRadialGradient(hdc any, rect Rect, radii Radii, stops []GradientStop) {
	t.Calls = append(t.Calls, "draw_radial_gradient")
}
func (t *TestContainer) DrawConicGradient(hdc any, rect Rect, radii Radii, stops []GradientStop) {
	t.Calls = append(t.Calls, "draw_conic_gradient")
}
func (t *TestContainer) DrawBorders(hdc any, b Borders, rect Rect, isRoot bool) {
	t.Calls = append(t.Calls, fmt.Sprintf("draw_borders(%v)", rect))
}
func (t *TestContainer) DrawListMarker(hdc any, m ListMarker) {
	t.Calls = append(t.Calls, fmt.Sprintf("draw_list_marker(%s)", m.Type))
}

// SetClip/DelClip track depth so tests can assert the engine never
// unbalances the clip stack (spec.md §8 invariant 3); a negative depth
// means DelClip fired without a matching SetClip, a programmer error
// per spec.md §7 that the test harness surfaces instead of hiding.
func (t *TestContainer) SetClip(rect Rect, radii Radii) {
	t.clipDepth++
	t.Calls = append(t.Calls, fmt.Sprintf("set_clip(%v)", rect))
}
func (t *TestContainer) DelClip() {
	t.clipDepth--
	t.Calls = append(t.Calls, "del_clip")
}

// ClipBalanced reports whether every SetClip so far has a matching
// DelClip, with the depth back at zero.
func (t *TestContainer) ClipBalanced() bool { return t.clipDepth == 0 }

func (t *TestContainer) GetClientRect() Rect { return Rect{0, 0, t.Width, t.Height} }
func (t *TestContainer) GetViewport() Rect   { return Rect{0, 0, t.Width, t.Height} }

func (t *TestContainer) GetMediaFeatures() MediaFeatures {
	return MediaFeatures{
		Type: "screen", Width: t.Width, Height: t.Height,
		DeviceWidth: t.Width, DeviceHeight: t.Height,
		Color: 8, ResolutionDPI: 96,
	}
}

func (t *TestContainer) GetLanguage() (string, string) { return "en", "US" }

func (t *TestContainer) ResolveColor(name string) (string, bool) { return "", false }

func (t *TestContainer) ImportCSS(url, baseURL string) (string, string) { return "", baseURL }

func (t *TestContainer) OnAnchorClick(url string) { t.Calls = append(t.Calls, "anchor_click:"+url) }
func (t *TestContainer) SetCursor(name string)    { t.Calls = append(t.Calls, "cursor:"+name) }
func (t *TestContainer) SetCaption(s string)      { t.Calls = append(t.Calls, "caption:"+s) }

func (t *TestContainer) CreateElement(tag string, attrs map[string]string) (any, bool) {
	return nil, false
}

var _ Container = (*TestContainer)(nil)
