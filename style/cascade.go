package style

import (
	"strconv"
	"strings"

	"github.com/arturoeanton/gockore/colors"
	"github.com/arturoeanton/gockore/cssom"
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/selector"
	"github.com/arturoeanton/gockore/units"
)

// MatchedRule pairs a compiled selector with its declaration block and
// the bookkeeping the cascade needs to order competing declarations:
// origin, then importance, then specificity, then source order
// (spec.md §4.2).
type MatchedRule struct {
	Sel   selector.Selector
	Decls []cssom.Declaration
	Origin cssom.Origin
	Order int
}

// CompiledSheet is a stylesheet with its selectors compiled, ready for
// repeated matching against many elements.
type CompiledSheet struct {
	Rules []MatchedRule
}

// Compile compiles every rule in sheet (ignoring @media — the caller
// filters MediaRules through the mediaquery package before calling
// Compile on the ones that currently apply).
func Compile(sheet *cssom.Stylesheet) CompiledSheet {
	var out CompiledSheet
	for _, r := range sheet.Rules {
		for _, sel := range selector.ParseList(r.SelectorText) {
			out.Rules = append(out.Rules, MatchedRule{Sel: sel, Decls: r.Declarations, Origin: r.Origin, Order: r.Order})
		}
	}
	return out
}

// winner tracks, for one property, the best declaration seen so far
// plus the precedence key it won on.
type winner struct {
	value     string
	important bool
	origin    cssom.Origin
	spec      selector.Specificity
	order     int
	set       bool
}

func (w *winner) consider(value string, important bool, origin cssom.Origin, spec selector.Specificity, order int) {
	if !w.set {
		*w = winner{value, important, origin, spec, order, true}
		return
	}
	if better(important, origin, spec, order, w.important, w.origin, w.spec, w.order) {
		*w = winner{value, important, origin, spec, order, true}
	}
}

// better reports whether candidate (a-prefixed) outranks incumbent
// (b-prefixed) per spec.md §4.2: important beats normal regardless of
// origin; within the same importance, author beats user beats
// user-agent; within the same origin/importance, higher specificity
// wins; ties break on later document order.
func better(aImportant bool, aOrigin cssom.Origin, aSpec selector.Specificity, aOrder int,
	bImportant bool, bOrigin cssom.Origin, bSpec selector.Specificity, bOrder int) bool {
	if aImportant != bImportant {
		return aImportant
	}
	if aOrigin != bOrigin {
		return aOrigin > bOrigin
	}
	if c := aSpec.Compare(bSpec); c != 0 {
		return c > 0
	}
	return aOrder > bOrder
}

// Resolve computes the style for ref: matches sheet against it,
// applies the cascade winner per property, falls back to inline-style
// declarations (which always win over sheet rules, short of
// !important in the sheet — handled by giving inline the author origin
// with a specificity no selector reaches), then inherits from parent
// where the child left a property unset, and finally resolves
// colors/calc().
func Resolve(sheet CompiledSheet, arena *dom.Arena, ref dom.NodeRef, inlineDecls []cssom.Declaration,
	parent Computed, state selector.MatchState, sysColor colors.SystemColorResolver) Computed {

	winners := map[string]*winner{}
	get := func(prop string) *winner {
		w, ok := winners[prop]
		if !ok {
			w = &winner{}
			winners[prop] = w
		}
		return w
	}

	for _, mr := range sheet.Rules {
		if !selector.Matches(mr.Sel, arena, ref, state) {
			continue
		}
		for _, d := range mr.Decls {
			get(d.Property).consider(d.Value, d.Important, mr.Origin, mr.Sel.Spec, mr.Order)
		}
	}
	// Inline style: treated as maximal specificity within the author
	// origin (spec.md §4.2's "a" bucket), so it beats any sheet rule
	// that isn't !important.
	for _, d := range inlineDecls {
		get(d.Property).consider(d.Value, d.Important, cssom.OriginAuthor,
			selector.Specificity{IDs: 1 << 20}, 1<<30)
	}

	// Start from initial values and carry over only the inherited
	// properties from parent, so every non-inherited property resets to
	// its initial value unless a declaration below sets it.
	computed := Initial(parent.FontSizePx)
	computed.Color, computed.Visibility = parent.Color, parent.Visibility
	computed.FontFamily, computed.FontWeight, computed.Italic = parent.FontFamily, parent.FontWeight, parent.Italic
	computed.LineHeight, computed.TextAlign, computed.WhiteSpace = parent.LineHeight, parent.TextAlign, parent.WhiteSpace
	computed.ListStyleType, computed.ListStylePosition = parent.ListStyleType, parent.ListStylePosition
	// font-size must apply before any other property, since line-height
	// and em/ex/ch lengths resolve against the element's own
	// (possibly just-set) font size, not the parent's.
	applyOrder := make([]string, 0, len(winners))
	if _, ok := winners["font-size"]; ok {
		applyOrder = append(applyOrder, "font-size")
	}
	for prop := range winners {
		if prop != "font-size" {
			applyOrder = append(applyOrder, prop)
		}
	}
	for _, prop := range applyOrder {
		w := winners[prop]
		if !w.set {
			continue
		}
		ctx := units.Context{
			FontSizePx: computed.FontSizePx, RootFontSizePx: 16,
			ParentWidthPx: 0, ParentHeightPx: 0,
		}
		applyProperty(&computed, prop, w.value, &propCtx{ctx: ctx, resolver: sysColor})
	}
	return computed
}

type propCtx struct {
	ctx      units.Context
	resolver colors.SystemColorResolver
}

// applyProperty is the property/value dispatch table (spec.md §4.3):
// one switch from property name to the Computed field(s) it sets. ctx
// is nil when resetting a property to its initial value (value is then
// ignored).
func applyProperty(c *Computed, property, value string, ctx *propCtx) {
	if ctx == nil {
		// Reset-to-initial path: mirror Initial()'s defaults for the
		// subset of non-inherited properties the cascade touches.
		switch property {
		case "display":
			c.Display = DisplayInline
		case "position":
			c.Position = PositionStatic
		case "float":
			c.Float = FloatNone
		case "clear":
			c.Clear = ClearNone
		case "background-color":
			c.BackgroundColor = colors.Transparent
		case "opacity":
			c.Opacity = 1
		case "z-index":
			c.ZIndexAuto = true
		}
		return
	}

	value = strings.TrimSpace(value)

	switch property {
	case "display":
		c.Display = parseDisplay(value)
	case "position":
		c.Position = parsePosition(value)
	case "float":
		c.Float = parseFloat(value)
	case "clear":
		c.Clear = parseClear(value)

	case "width":
		c.Width = parseLen(value)
	case "height":
		c.Height = parseLen(value)
	case "min-width":
		c.MinWidth = parseLen(value)
	case "max-width":
		c.MaxWidth = parseLen(value)
	case "min-height":
		c.MinHeight = parseLen(value)
	case "max-height":
		c.MaxHeight = parseLen(value)
	case "box-sizing":
		if value == "border-box" {
			c.BoxSizing = BoxSizingBorder
		} else {
			c.BoxSizing = BoxSizingContent
		}

	case "margin":
		applyEdgeShorthand(value, &c.Margin)
	case "margin-top":
		c.Margin.Top = parseLen(value)
	case "margin-right":
		c.Margin.Right = parseLen(value)
	case "margin-bottom":
		c.Margin.Bottom = parseLen(value)
	case "margin-left":
		c.Margin.Left = parseLen(value)

	case "padding":
		applyEdgeShorthand(value, &c.Padding)
	case "padding-top":
		c.Padding.Top = parseLen(value)
	case "padding-right":
		c.Padding.Right = parseLen(value)
	case "padding-bottom":
		c.Padding.Bottom = parseLen(value)
	case "padding-left":
		c.Padding.Left = parseLen(value)

	case "border-width":
		applyEdgeShorthand(value, &c.BorderWidth)
	case "border-top-width":
		c.BorderWidth.Top = parseLen(value)
	case "border-right-width":
		c.BorderWidth.Right = parseLen(value)
	case "border-bottom-width":
		c.BorderWidth.Bottom = parseLen(value)
	case "border-left-width":
		c.BorderWidth.Left = parseLen(value)
	case "border-color":
		if col, ok := colors.Parse(value, ctx.resolver); ok {
			c.BorderColor = [4]colors.Color{col, col, col, col}
		}
	case "border-style":
		s := strings.Fields(value)
		if len(s) > 0 {
			for i := range c.BorderStyle {
				c.BorderStyle[i] = s[0]
			}
		}

	case "top":
		c.Top = parseLen(value)
	case "right":
		c.Right = parseLen(value)
	case "bottom":
		c.Bottom = parseLen(value)
	case "left":
		c.Left = parseLen(value)
	case "z-index":
		if value == "auto" {
			c.ZIndexAuto = true
		} else if n, err := strconv.Atoi(value); err == nil {
			c.ZIndex, c.ZIndexAuto = n, false
		}

	case "color":
		if col, ok := colors.Parse(value, ctx.resolver); ok {
			c.Color = col
		}
	case "background-color":
		if col, ok := colors.Parse(value, ctx.resolver); ok {
			c.BackgroundColor = col
		}
	case "opacity":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			c.Opacity = clamp01(f)
		}
	case "visibility":
		c.Visibility = value != "hidden" && value != "collapse"

	case "font-family":
		c.FontFamily = value
	case "font-size":
		if l := parseLen(value); l.IsDefinite() {
			c.FontSizePx = l.ResolveAgainstWidth(ctx.ctx)
		}
	case "font-weight":
		c.FontWeight = parseFontWeight(value)
	case "font-style":
		c.Italic = value == "italic" || value == "oblique"
	case "line-height":
		if value == "normal" {
			c.LineHeight = c.FontSizePx * 1.2
		} else if l, ok := units.Parse(value); ok {
			if l.Unit == units.UnitInteger || l.Unit == units.UnitNone {
				c.LineHeight = l.Value * c.FontSizePx
			} else {
				c.LineHeight = l.ResolveAgainstWidth(ctx.ctx)
			}
		}

	case "text-align":
		c.TextAlign = parseTextAlign(value)
	case "white-space":
		c.WhiteSpace = parseWhiteSpace(value)
	case "text-decoration", "text-decoration-line":
		c.TextDecoLine = value

	case "overflow":
		c.OverflowX, c.OverflowY = parseOverflow(value), parseOverflow(value)
	case "overflow-x":
		c.OverflowX = parseOverflow(value)
	case "overflow-y":
		c.OverflowY = parseOverflow(value)

	case "flex-direction":
		c.FlexDirection = parseFlexDirection(value)
	case "flex-wrap":
		c.FlexWrap = parseFlexWrap(value)
	case "justify-content":
		c.JustifyContent = parseJustify(value)
	case "align-items":
		c.AlignItems = parseAlign(value)
	case "align-self":
		if value == "auto" {
			c.AlignSelfAuto = true
		} else {
			c.AlignSelf, c.AlignSelfAuto = parseAlign(value), false
		}
	case "flex-grow":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			c.FlexGrow = f
		}
	case "flex-shrink":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			c.FlexShrink = f
		}
	case "flex-basis":
		c.FlexBasis = parseLen(value)
	case "order":
		if n, err := strconv.Atoi(value); err == nil {
			c.Order = n
		}
	case "gap", "row-gap", "column-gap":
		c.Gap = parseLen(value)
	case "flex":
		applyFlexShorthand(c, value)
	case "list-style-type":
		c.ListStyleType = value
	case "list-style-position":
		c.ListStylePosition = value
	case "list-style":
		applyListStyleShorthand(c, value)
	}
}

// applyListStyleShorthand splits "disc inside"-style list-style values
// into their type/position longhands; an image term (url(...)) is left
// unhandled since the container's list-marker image path isn't wired.
func applyListStyleShorthand(c *Computed, value string) {
	for _, tok := range strings.Fields(value) {
		switch tok {
		case "inside", "outside":
			c.ListStylePosition = tok
		case "none", "disc", "circle", "square", "decimal",
			"lower-alpha", "upper-alpha", "lower-roman", "upper-roman":
			c.ListStyleType = tok
		}
	}
}

func parseLen(v string) units.Length {
	if inner, ok := units.LooksLikeCalc(v); ok {
		if node, ok := units.ParseCalc(inner); ok {
			// calc() folds to a single px Length eagerly when every
			// term is itself a context-free length; a calc() that
			// mixes in percentages or font-relative units is not
			// resolved: it falls back to 0px, and nothing later
			// re-evaluates it against a containing block.
			if result, ok := node.EvalConstant(); ok {
				return result
			}
			return units.Length{Value: 0, Unit: units.UnitPx}
		}
	}
	l, ok := units.Parse(v)
	if !ok {
		return units.Auto
	}
	return l
}

func applyEdgeShorthand(value string, edges *Edges) {
	parts := strings.Fields(value)
	vals := make([]units.Length, 0, 4)
	for _, p := range parts {
		vals = append(vals, parseLen(p))
	}
	switch len(vals) {
	case 1:
		edges.Top, edges.Right, edges.Bottom, edges.Left = vals[0], vals[0], vals[0], vals[0]
	case 2:
		edges.Top, edges.Bottom = vals[0], vals[0]
		edges.Right, edges.Left = vals[1], vals[1]
	case 3:
		edges.Top, edges.Bottom = vals[0], vals[2]
		edges.Right, edges.Left = vals[1], vals[1]
	case 4:
		edges.Top, edges.Right, edges.Bottom, edges.Left = vals[0], vals[1], vals[2], vals[3]
	}
}

func applyFlexShorthand(c *Computed, value string) {
	parts := strings.Fields(value)
	if value == "none" {
		c.FlexGrow, c.FlexShrink, c.FlexBasis = 0, 0, units.Auto
		return
	}
	if len(parts) >= 1 {
		if f, err := strconv.ParseFloat(parts[0], 64); err == nil {
			c.FlexGrow = f
		}
	}
	if len(parts) >= 2 {
		if f, err := strconv.ParseFloat(parts[1], 64); err == nil {
			c.FlexShrink = f
		}
	}
	if len(parts) >= 3 {
		c.FlexBasis = parseLen(parts[2])
	}
}

func parseFontWeight(v string) int {
	switch v {
	case "normal":
		return 400
	case "bold":
		return 700
	case "lighter":
		return 300
	case "bolder":
		return 800
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return 400
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

func parseDisplay(v string) Display {
	switch v {
	case "block":
		return DisplayBlock
	case "inline-block":
		return DisplayInlineBlock
	case "flex":
		return DisplayFlex
	case "inline-flex":
		return DisplayInlineFlex
	case "table":
		return DisplayTable
	case "table-row":
		return DisplayTableRow
	case "table-cell":
		return DisplayTableCell
	case "table-row-group", "table-header-group", "table-footer-group":
		return DisplayTableRowGroup
	case "list-item":
		return DisplayListItem
	case "none":
		return DisplayNone
	default:
		return DisplayInline
	}
}

func parsePosition(v string) Position {
	switch v {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	case "sticky":
		return PositionSticky
	default:
		return PositionStatic
	}
}

func parseFloat(v string) Float {
	switch v {
	case "left":
		return FloatLeft
	case "right":
		return FloatRight
	default:
		return FloatNone
	}
}

func parseClear(v string) Clear {
	switch v {
	case "left":
		return ClearLeft
	case "right":
		return ClearRight
	case "both":
		return ClearBoth
	default:
		return ClearNone
	}
}

func parseTextAlign(v string) TextAlign {
	switch v {
	case "right", "end":
		return TextAlignRight
	case "center":
		return TextAlignCenter
	case "justify":
		return TextAlignJustify
	default:
		return TextAlignLeft
	}
}

func parseWhiteSpace(v string) WhiteSpace {
	switch v {
	case "nowrap":
		return WhiteSpaceNowrap
	case "pre":
		return WhiteSpacePre
	case "pre-wrap":
		return WhiteSpacePreWrap
	case "pre-line":
		return WhiteSpacePreLine
	default:
		return WhiteSpaceNormal
	}
}

func parseOverflow(v string) Overflow {
	switch v {
	case "hidden":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	case "auto":
		return OverflowAuto
	default:
		return OverflowVisible
	}
}

func parseFlexDirection(v string) FlexDirection {
	switch v {
	case "row-reverse":
		return FlexRowReverse
	case "column":
		return FlexColumn
	case "column-reverse":
		return FlexColumnReverse
	default:
		return FlexRow
	}
}

func parseFlexWrap(v string) FlexWrap {
	switch v {
	case "wrap":
		return FlexWrapNormal
	case "wrap-reverse":
		return FlexWrapReverse
	default:
		return FlexNoWrap
	}
}

func parseJustify(v string) JustifyContent {
	switch v {
	case "flex-end", "end":
		return JustifyEnd
	case "center":
		return JustifyCenter
	case "space-between":
		return JustifySpaceBetween
	case "space-around":
		return JustifySpaceAround
	case "space-evenly":
		return JustifySpaceEvenly
	default:
		return JustifyStart
	}
}

func parseAlign(v string) AlignItems {
	switch v {
	case "flex-start", "start":
		return AlignStart
	case "flex-end", "end":
		return AlignEnd
	case "center":
		return AlignCenter
	case "baseline":
		return AlignBaseline
	default:
		return AlignStretch
	}
}
