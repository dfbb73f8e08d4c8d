// Package container defines the capability interface a host implements
// and the engine consumes (spec.md §6.1): fonts, images, drawing
// primitives, clipping, viewport/media metrics, and resource fetch.
// The engine never touches a native drawing surface directly — every
// pixel operation goes through this interface, so the same render
// tree drives an ebiten window, a headless test harness, or any other
// host backend without the core knowing which.
package container

import "github.com/arturoeanton/gockore/colors"

// FontDescriptor requests a font resolution (spec.md §6.1 create_font).
type FontDescriptor struct {
	FamilyList []string
	SizePx     float64
	Weight     int // 100-900
	Italic     bool
	Decoration string // "none", "underline", "line-through", "overline"
}

// FontMetrics is what the container reports back for a resolved font.
type FontMetrics struct {
	Ascent, Descent, Height float64
	XHeight                 float64
	ChWidth                 float64
	DrawSpaces              bool
	SubShiftPx, SuperShiftPx float64
}

// FontHandle is an opaque, container-owned font identity; the engine
// never inspects it, only passes it back to TextWidth/DrawText/DeleteFont.
type FontHandle any

// Rect is an axis-aligned pixel rectangle, left/top inclusive.
type Rect struct {
	X, Y, W, H int
}

// Radii is the four corner radii of a rounded rectangle, in source
// order: top-left, top-right, bottom-right, bottom-left.
type Radii [4]int

// BorderSide describes one edge of a border for draw_borders.
type BorderSide struct {
	WidthPx int
	Style   string // "none","solid","dashed","dotted","double","groove","ridge","inset","outset"
	Color   colors.Color
}

// Borders bundles all four sides plus corner radii for one draw_borders
// call, which the engine always issues once per box (never per side) so
// the container can render shared corners correctly.
type Borders struct {
	Top, Right, Bottom, Left BorderSide
	Radii                    Radii
}

// ListMarker describes a single list-item marker to paint.
type ListMarker struct {
	Type  string // "disc","circle","square","decimal","none",...
	Index int    // 1-based ordinal for numbered types
	Rect  Rect
	Color colors.Color
	ImageURL string
}

// MediaFeatures mirrors spec.md §6.1's get_media_features payload.
type MediaFeatures struct {
	Type                         string // "screen", "print", ...
	Width, Height                int
	DeviceWidth, DeviceHeight    int
	Color, Monochrome, ColorIndex int
	ResolutionDPI                float64
}

// Container is the full capability set the core depends on (spec.md
// §6.1). A host implements this once; the engine's layout and paint
// packages call it, never a concrete drawing library.
type Container interface {
	// Fonts.
	CreateFont(d FontDescriptor) (FontHandle, FontMetrics)
	DeleteFont(h FontHandle)
	TextWidth(h FontHandle, utf8Text string) float64
	DrawText(hdc any, utf8Text string, h FontHandle, color colors.Color, rect Rect)
	PtToPx(pt float64) float64
	DefaultFontName() string
	DefaultFontSizePx() float64

	// Images.
	LoadImage(src, baseURL string, redrawOnReady bool)
	GetImageSize(src, baseURL string) (w, h int)
	DrawImage(hdc any, layer int, url, baseURL string, rect Rect)

	// Background/border/marker primitives.
	DrawSolidFill(hdc any, rect Rect, radii Radii, c colors.Color)
	DrawLinearGradient(hdc any, rect Rect, radii Radii, stops []GradientStop, angleDeg float64)
	DrawRadialGradient(hdc any, rect Rect, radii Radii, stops []GradientStop)
	DrawConicGradient(hdc any, rect Rect, radii Radii, stops []GradientStop)
	DrawBorders(hdc any, b Borders, rect Rect, isRoot bool)
	DrawListMarker(hdc any, m ListMarker)

	// Clipping. The engine guarantees SetClip/DelClip are strictly
	// LIFO-paired over one Draw call (spec.md §8 invariant 3).
	SetClip(rect Rect, radii Radii)
	DelClip()

	// Viewport / media / language.
	GetClientRect() Rect
	GetViewport() Rect
	GetMediaFeatures() MediaFeatures
	GetLanguage() (lang, culture string)
	ResolveColor(name string) (hex string, ok bool)

	// Resource fetch.
	ImportCSS(url, baseURL string) (text string, resolvedBaseURL string)

	// Notifications.
	OnAnchorClick(url string)
	SetCursor(name string)
	SetCaption(s string)

	// Custom elements. Returning ok=false means "no custom behavior",
	// the engine falls back to the built-in tag handling.
	CreateElement(tag string, attrs map[string]string) (custom any, ok bool)
}

// GradientStop is one color stop in a linear/radial/conic gradient.
type GradientStop struct {
	OffsetPercent float64
	Color         colors.Color
}
