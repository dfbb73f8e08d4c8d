// Package style resolves the cascade (origin, importance, specificity,
// document order), applies inheritance, and produces the computed
// value set layout consumes, per spec.md §3.1/§4.2/§4.3.
package style

import (
	"github.com/arturoeanton/gockore/colors"
	"github.com/arturoeanton/gockore/units"
)

// Keyword enums. These collapse string property values to integer
// tags once, at computed-value time, rather than comparing strings
// during every layout pass (spec.md §9).
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayInlineBlock
	DisplayFlex
	DisplayInlineFlex
	DisplayTable
	DisplayTableRow
	DisplayTableCell
	DisplayTableRowGroup
	DisplayListItem
	DisplayNone
)

type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

type Float int

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

type Clear int

const (
	ClearNone Clear = iota
	ClearLeft
	ClearRight
	ClearBoth
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

type WhiteSpace int

const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpaceNowrap
	WhiteSpacePre
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexRowReverse
	FlexColumn
	FlexColumnReverse
)

type FlexWrap int

const (
	FlexNoWrap FlexWrap = iota
	FlexWrapNormal
	FlexWrapReverse
)

type JustifyContent int

const (
	JustifyStart JustifyContent = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignBaseline
)

// BoxSizing selects which edge `width`/`height` measure to.
type BoxSizing int

const (
	BoxSizingContent BoxSizing = iota
	BoxSizingBorder
)

// Edges holds the four physical edges of a box-model property.
type Edges struct {
	Top, Right, Bottom, Left units.Length
}

// Computed is the full computed style for one element: every property
// resolved through the cascade and, where the spec calls for it,
// through unit/color parsing — but NOT yet resolved against a
// containing-block width (percentages stay symbolic in units.Length
// until layout's Resolve* calls run; calc() is already folded to px, or
// to 0px when it needs context, see parseLen).
type Computed struct {
	Display  Display
	Position Position
	Float    Float
	Clear    Clear

	Width, Height       units.Length
	MinWidth, MaxWidth  units.Length
	MinHeight, MaxHeight units.Length
	BoxSizing           BoxSizing

	Margin  Edges
	Padding Edges

	BorderWidth Edges
	BorderColor [4]colors.Color // top, right, bottom, left
	BorderStyle [4]string

	Top, Right, Bottom, Left units.Length

	Color           colors.Color
	BackgroundColor colors.Color
	Opacity         float64
	Visibility      bool // true = visible

	FontFamily string
	FontSizePx float64
	FontWeight int
	Italic     bool
	LineHeight float64 // in px, already resolved against FontSizePx

	TextAlign     TextAlign
	WhiteSpace    WhiteSpace
	TextDecoLine  string // "none"/"underline"/"line-through"/"overline"

	OverflowX, OverflowY Overflow
	ZIndex               int
	ZIndexAuto           bool

	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	JustifyContent JustifyContent
	AlignItems     AlignItems
	AlignSelf      AlignItems
	AlignSelfAuto  bool
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      units.Length
	Order          int
	Gap            units.Length

	ListStyleType     string // "disc","circle","square","decimal","lower-alpha","upper-alpha","none"
	ListStylePosition string // "outside","inside"
}

// Inherited properties propagate from parent to child when the child
// has no explicit declaration (spec.md §4.3). Non-inherited properties
// reset to their initial value instead.
var inheritedProperties = map[string]bool{
	"color": true, "font-family": true, "font-size": true,
	"font-weight": true, "font-style": true, "line-height": true,
	"text-align": true, "white-space": true, "visibility": true,
	"list-style-type": true, "list-style-position": true,
	"cursor": true, "letter-spacing": true, "word-spacing": true,
}

// IsInherited reports whether the named property inherits by default.
func IsInherited(property string) bool { return inheritedProperties[property] }

// Initial returns a Computed populated with CSS initial values, rooted
// at the given font size (the UA default, before any author rule
// applies) — this is the value a property "inherits" into the root
// element, and what every non-inherited property resets to.
func Initial(rootFontSizePx float64) Computed {
	return Computed{
		Display:         DisplayInline,
		Position:        PositionStatic,
		Width:           units.Auto,
		Height:          units.Auto,
		MaxWidth:        units.Length{Unit: units.UnitNone},
		MaxHeight:       units.Length{Unit: units.UnitNone},
		Color:           colors.Black,
		BackgroundColor: colors.Transparent,
		Opacity:         1,
		Visibility:      true,
		FontFamily:      "sans-serif",
		FontSizePx:      rootFontSizePx,
		FontWeight:      400,
		LineHeight:      rootFontSizePx * 1.2,
		TextDecoLine:    "none",
		ZIndexAuto:      true,
		FlexShrink:      1,
		FlexBasis:       units.Auto,
		AlignSelfAuto:   true,
		ListStyleType:   "disc",
		ListStylePosition: "outside",
	}
}

// Clone returns a value copy; Computed contains no reference fields
// that need deep copying, so a plain struct copy suffices.
func (c Computed) Clone() Computed { return c }

func (c Computed) IsBlockLevel() bool {
	switch c.Display {
	case DisplayBlock, DisplayFlex, DisplayTable, DisplayListItem:
		return true
	}
	return false
}

func (c Computed) IsPositioned() bool { return c.Position != PositionStatic }

func (c Computed) EstablishesBFC() bool {
	return c.Float != FloatNone || c.Position == PositionAbsolute ||
		c.Position == PositionFixed || c.Display == DisplayInlineBlock ||
		c.OverflowX != OverflowVisible
}
