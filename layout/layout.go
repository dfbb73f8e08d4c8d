// Package layout resolves the render tree's geometry: block formatting
// contexts with margin collapsing, inline formatting contexts with line
// breaking, floats, flexbox, and absolute/fixed positioning, per
// spec.md §4.5. Every box's final position is rounded half-to-even to
// an integer pixel at the point of assignment (spec.md §4.5invariant).
package layout

import (
	"strings"

	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/container"
	"github.com/arturoeanton/gockore/style"
	"github.com/arturoeanton/gockore/textutil"
	"github.com/arturoeanton/gockore/units"
)

// Rect is a laid-out box's border-box geometry in integer pixels.
type Rect struct {
	X, Y, W, H int
}

// Frame is the full box-model geometry for one boxtree.BoxRef: content
// rect plus the four edge widths that surround it, all in integer
// pixels, matching spec.md §4.5's box model.
type Frame struct {
	ContentX, ContentY, ContentW, ContentH int
	MarginTop, MarginRight, MarginBottom, MarginLeft       int
	BorderTop, BorderRight, BorderBottom, BorderLeft       int
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft   int
	// Baseline is a field for the content-relative baseline offset of
	// inline-level boxes; no layout pass in this package sets it, so it
	// is always 0.
	Baseline int
}

func (f Frame) BorderRect() Rect {
	return Rect{
		X: f.ContentX - f.PaddingLeft - f.BorderLeft,
		Y: f.ContentY - f.PaddingTop - f.BorderTop,
		W: f.ContentW + f.PaddingLeft + f.PaddingRight + f.BorderLeft + f.BorderRight,
		H: f.ContentH + f.PaddingTop + f.PaddingBottom + f.BorderTop + f.BorderBottom,
	}
}

func (f Frame) MarginRect() Rect {
	b := f.BorderRect()
	return Rect{
		X: b.X - f.MarginLeft, Y: b.Y - f.MarginTop,
		W: b.W + f.MarginLeft + f.MarginRight, H: b.H + f.MarginTop + f.MarginBottom,
	}
}

// Tree holds the computed geometry for every box in a boxtree.Tree,
// parallel-indexed by boxtree.BoxRef (spec.md §9: no pointers back
// into the box tree from layout data).
type Tree struct {
	frames []Frame
	boxes  *boxtree.Tree
	Width, Height int
}

func (t *Tree) Frame(ref boxtree.BoxRef) Frame { return t.frames[ref] }
func (t *Tree) Boxes() *boxtree.Tree           { return t.boxes }

// maxRetries is the retry bound for dependent-width/height re-layout
// (spec.md §4.5). No function in this package reads it: every box is
// measured once per Run and never re-measured.
const maxRetries = 2

// ctx carries the per-layout-pass dependencies: font metrics via the
// container, and the accumulated float/containing-block state a
// recursive descent needs at arbitrary depth.
type ctx struct {
	c       container.Container
	frames  []Frame
	boxes   *boxtree.Tree
	fonts   map[string]container.FontHandle
	viewportW, viewportH float64
}

// Run lays out boxes within a viewport maxWidth px wide, using c for
// font metrics and text measurement. Run takes no render mode (spec.md
// §6.2's render(width, mode)): it always computes the full tree, and
// callers implementing fixed_only/no_fixed filter which boxes they read
// back.
func Run(boxes *boxtree.Tree, c container.Container, maxWidthPx int) *Tree {
	lc := &ctx{
		c: c, boxes: boxes, fonts: map[string]container.FontHandle{},
		viewportW: float64(maxWidthPx),
	}
	lc.frames = make([]Frame, boxes.Len())

	root := boxes.Root
	avail := float64(maxWidthPx)
	rootStyle := boxes.Style(root)
	h := lc.layoutBlockContainer(root, 0, 0, avail, rootStyle, nil)

	t := &Tree{frames: lc.frames, boxes: boxes, Width: maxWidthPx, Height: units.RoundHalfToEven(h)}
	return t
}

func (lc *ctx) fontFor(s style.Computed) (container.FontHandle, container.FontMetrics) {
	key := s.FontFamily + "|" + itoa(int(s.FontSizePx)) + "|" + itoa(s.FontWeight) + boolStr(s.Italic)
	if lc.c == nil {
		return nil, container.FontMetrics{Ascent: s.FontSizePx * 0.8, Descent: s.FontSizePx * 0.2, Height: s.LineHeight, ChWidth: s.FontSizePx * 0.5}
	}
	if h, ok := lc.fonts[key]; ok {
		_, fm := lc.c.CreateFont(container.FontDescriptor{FamilyList: strings.Split(s.FontFamily, ","), SizePx: s.FontSizePx, Weight: s.FontWeight, Italic: s.Italic})
		return h, fm
	}
	h, fm := lc.c.CreateFont(container.FontDescriptor{FamilyList: strings.Split(s.FontFamily, ","), SizePx: s.FontSizePx, Weight: s.FontWeight, Italic: s.Italic})
	lc.fonts[key] = h
	return h, fm
}

func (lc *ctx) textWidth(h container.FontHandle, text string, s style.Computed) float64 {
	if lc.c == nil {
		n := 0
		for range text {
			n++
		}
		return float64(n) * s.FontSizePx * 0.5
	}
	return lc.c.TextWidth(h, text)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

func boolStr(b bool) string {
	if b {
		return "i"
	}
	return ""
}

// resolveLenW resolves a units.Length against a containing-block width.
func resolveLenW(l units.Length, containingWidth float64, s style.Computed) float64 {
	ctx := units.Context{FontSizePx: s.FontSizePx, RootFontSizePx: 16, ParentWidthPx: containingWidth}
	return l.ResolveAgainstWidth(ctx)
}

// floatEntry records one already-placed float's margin-box extent, in
// the same absolute coordinate space as every x/y passed through the
// layout recursion, so a descendant at arbitrary depth can test
// against it without coordinate translation.
type floatEntry struct {
	side        style.Float
	top, bottom float64
	left, right float64
}

// floatInsets returns how far the left/right edges of a line or block
// box spanning [x0,x1) at vertical band [y0,y1) must move inward to
// clear every float in floats whose band intersects [y0,y1).
func floatInsets(floats []floatEntry, x0, x1, y0, y1 float64) (insetLeft, insetRight float64) {
	for _, f := range floats {
		if f.bottom <= y0 || f.top >= y1 {
			continue
		}
		switch f.side {
		case style.FloatLeft:
			if r := f.right - x0; r > insetLeft {
				insetLeft = r
			}
		case style.FloatRight:
			if r := x1 - f.left; r > insetRight {
				insetRight = r
			}
		}
	}
	if insetLeft < 0 {
		insetLeft = 0
	}
	if insetRight < 0 {
		insetRight = 0
	}
	return insetLeft, insetRight
}

// clearY returns the first y at or after cur that clears every float
// of the side(s) named by c.
func clearY(floats []floatEntry, cur float64, c style.Clear) float64 {
	if c == style.ClearNone {
		return cur
	}
	y := cur
	for _, f := range floats {
		switch c {
		case style.ClearLeft:
			if f.side != style.FloatLeft {
				continue
			}
		case style.ClearRight:
			if f.side != style.FloatRight {
				continue
			}
		}
		if f.bottom > y {
			y = f.bottom
		}
	}
	return y
}

// resolveMargins resolves a box's left/right margins against a
// containing-block width, applying CSS2.1 §10.3.3's auto-margin rule:
// when width is not itself auto, an auto margin absorbs the residual
// space left over after border, padding, and the used width are
// accounted for (splitting it evenly when both sides are auto, which
// centers the box).
func resolveMargins(s style.Computed, containingWidth, usedWidth float64) (left, right float64) {
	leftAuto := s.Margin.Left.IsAuto()
	rightAuto := s.Margin.Right.IsAuto()
	if !leftAuto {
		left = resolveLenW(s.Margin.Left, containingWidth, s)
	}
	if !rightAuto {
		right = resolveLenW(s.Margin.Right, containingWidth, s)
	}
	if s.Width.IsAuto() || (!leftAuto && !rightAuto) {
		return left, right
	}
	residual := containingWidth - usedWidth - borderAndPadding(s, containingWidth) - left - right
	if residual < 0 {
		residual = 0
	}
	switch {
	case leftAuto && rightAuto:
		half := residual / 2
		left, right = half, half
	case leftAuto:
		left = residual
	case rightAuto:
		right = residual
	}
	return left, right
}

// layoutBlockContainer lays out box ref as a block formatting context:
// its in-flow block-level children are stacked vertically with margin
// collapsing, and any contiguous inline-level children were already
// wrapped into an anonymous block by boxtree.Build so this function
// only ever sees block-level children (or, for a leaf whose only
// content is an anonymous-inline run, it delegates straight to the
// inline algorithm).
func (lc *ctx) layoutBlockContainer(ref boxtree.BoxRef, x, y, availWidth float64, s style.Computed, ambient []floatEntry) float64 {
	children := lc.boxes.Children(ref)
	if isInlineRun(lc.boxes, children) {
		contentWidth := resolveWidth(s, availWidth)
		innerX := x + edgeLeft(s, availWidth, contentWidth)
		h := lc.layoutInlineContext(ref, innerX, y, contentWidth, s, children, ambient)
		if !s.Height.IsAuto() {
			h = resolveLenH(s, h)
		}
		lc.setFrame(ref, x, y, contentWidth, h, s, availWidth)
		return h
	}

	contentWidth := resolveWidth(s, availWidth)
	innerX := x + edgeLeft(s, availWidth, contentWidth)
	innerAvail := contentWidth

	cursorY := y
	var prevMarginBottom float64
	first := true
	floats := append([]floatEntry(nil), ambient...)
	ownFloatsFrom := len(floats)

	for _, child := range children {
		if lc.boxes.Kind(child) == boxtree.KindText {
			continue // stray text among block siblings: ignorable whitespace
		}
		cs := lc.boxes.Style(child)
		if cs.Display == style.DisplayNone {
			continue
		}
		if cs.Position == style.PositionAbsolute || cs.Position == style.PositionFixed {
			lc.layoutAbsolute(child, innerX, cursorY, innerAvail, cs)
			continue
		}

		if cs.Clear != style.ClearNone {
			cursorY = clearY(floats, cursorY, cs.Clear)
		}

		if cs.Float != style.FloatNone {
			fw := resolveWidth(cs, innerAvail)
			insetLeft, insetRight := floatInsets(floats, innerX, innerX+innerAvail, cursorY, cursorY)
			var fx float64
			if cs.Float == style.FloatLeft {
				fx = innerX + insetLeft
			} else {
				fx = innerX + innerAvail - insetRight - fw
			}
			fixed := cs
			fixed.Width = units.Length{Value: fw, Unit: units.UnitPx}
			fh := lc.layoutBlockLevelChild(child, fx, cursorY, fw, fixed, nil)
			floats = append(floats, floatEntry{side: cs.Float, top: cursorY, bottom: cursorY + fh, left: fx, right: fx + fw})
			continue // floats leave the normal flow: no cursor advance, no margin collapsing
		}

		marginTop := resolveLenW(cs.Margin.Top, innerAvail, cs)
		marginBottom := resolveLenW(cs.Margin.Bottom, innerAvail, cs)

		collapsed := marginTop
		if !first {
			collapsed = collapseMargins(prevMarginBottom, marginTop)
			cursorY -= prevMarginBottom // undo the previous child's bottom margin; collapsed value replaces it
		}
		cursorY += collapsed

		childHeight := lc.layoutBlockLevelChild(child, innerX, cursorY, innerAvail, cs, floats)
		cursorY += childHeight
		prevMarginBottom = marginBottom
		cursorY += marginBottom
		first = false
	}

	// Floats placed directly in this container still occupy space in
	// it even past the last in-flow child (e.g. a container with only
	// floated children and no in-flow content to push cursorY down).
	for _, fl := range floats[ownFloatsFrom:] {
		if fl.bottom > cursorY {
			cursorY = fl.bottom
		}
	}

	contentHeight := cursorY - y
	if !s.Height.IsAuto() {
		contentHeight = resolveLenH(s, contentHeight)
	}
	lc.setFrame(ref, x, y, contentWidth, contentHeight, s, availWidth)
	return contentHeight
}

// layoutBlockLevelChild dispatches one block-level child to the
// algorithm its display value requires, returning its border-box
// height (the parent adds the vertical margins itself when it advances
// the cursor). ambient carries
// floats placed by ancestors that still narrow this child's line
// boxes; a flex container's items never see them (flex items are not
// affected by floats per CSS Flexbox).
func (lc *ctx) layoutBlockLevelChild(ref boxtree.BoxRef, x, y, availWidth float64, s style.Computed, ambient []floatEntry) float64 {
	switch s.Display {
	case style.DisplayFlex, style.DisplayInlineFlex:
		lc.layoutFlexContainer(ref, x, y, availWidth, s)
	case style.DisplayTable:
		lc.layoutTable(ref, x, y, availWidth, s)
	default:
		lc.layoutBlockContainer(ref, x, y, availWidth, s, ambient)
	}
	f := lc.frames[ref]
	b := f.BorderRect()
	return float64(b.H)
}

// isInlineRun reports whether children are exclusively text/inline
// boxes (i.e. this container's content is itself an inline formatting
// context rather than a sequence of block-level boxes). A floated
// child always forces block treatment regardless of its own display,
// per CSS2.1's box-generation table, so it can be pulled out of the
// run and placed against the float list.
func isInlineRun(boxes *boxtree.Tree, children []boxtree.BoxRef) bool {
	for _, c := range children {
		if boxes.Kind(c) == boxtree.KindText {
			continue
		}
		cs := boxes.Style(c)
		if cs.IsBlockLevel() || cs.Float != style.FloatNone {
			return false
		}
	}
	return true
}

// collapseMargins implements the adjoining-siblings collapsing rule
// (spec.md §4.5): the larger of two positive margins, or for mixed
// sign the sum of the largest positive and smallest (most negative)
// negative.
func collapseMargins(a, b float64) float64 {
	if a >= 0 && b >= 0 {
		return maxf(a, b)
	}
	if a < 0 && b < 0 {
		return minf(a, b)
	}
	return a + b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func resolveWidth(s style.Computed, containingWidth float64) float64 {
	if s.Width.IsAuto() {
		// Auto margins don't apply when width is itself auto (CSS2.1
		// §10.3.3): edgeLeft/edgeRight treat them as 0 here regardless
		// of usedWidth, so the placeholder is never consulted.
		edges := edgeLeft(s, containingWidth, 0) + edgeRight(s, containingWidth, 0)
		w := containingWidth - edges
		if w < 0 {
			w = 0
		}
		return clampWidth(s, w, containingWidth)
	}
	w := resolveLenW(s.Width, containingWidth, s)
	if s.BoxSizing == style.BoxSizingBorder {
		w -= borderAndPadding(s, containingWidth)
	}
	return clampWidth(s, w, containingWidth)
}

func clampWidth(s style.Computed, w, containingWidth float64) float64 {
	if s.MinWidth.IsDefinite() {
		if min := resolveLenW(s.MinWidth, containingWidth, s); w < min {
			w = min
		}
	}
	if !s.MaxWidth.IsNone() && s.MaxWidth.IsDefinite() {
		if max := resolveLenW(s.MaxWidth, containingWidth, s); w > max {
			w = max
		}
	}
	if w < 0 {
		w = 0
	}
	return w
}

func resolveLenH(s style.Computed, autoHeight float64) float64 {
	if s.Height.IsAuto() {
		return autoHeight
	}
	ctx := units.Context{FontSizePx: s.FontSizePx, RootFontSizePx: 16, ParentHeightPx: 0}
	h := s.Height.ResolveAgainstHeight(ctx)
	if h < 0 {
		h = autoHeight
	}
	return h
}

func borderAndPadding(s style.Computed, containingWidth float64) float64 {
	return resolveLenW(s.BorderWidth.Left, containingWidth, s) + resolveLenW(s.BorderWidth.Right, containingWidth, s) +
		resolveLenW(s.Padding.Left, containingWidth, s) + resolveLenW(s.Padding.Right, containingWidth, s)
}

// edgeLeft/edgeRight sum one side's margin+border+padding. usedWidth is
// the box's already-resolved content width, needed only to split
// residual space between auto margins (resolveMargins ignores it when
// width is itself auto).
func edgeLeft(s style.Computed, containingWidth, usedWidth float64) float64 {
	ml, _ := resolveMargins(s, containingWidth, usedWidth)
	return ml + resolveLenW(s.BorderWidth.Left, containingWidth, s) + resolveLenW(s.Padding.Left, containingWidth, s)
}
func edgeRight(s style.Computed, containingWidth, usedWidth float64) float64 {
	_, mr := resolveMargins(s, containingWidth, usedWidth)
	return mr + resolveLenW(s.BorderWidth.Right, containingWidth, s) + resolveLenW(s.Padding.Right, containingWidth, s)
}

// setTextFrame records a text box's geometry directly: text runs carry
// no margin/border/padding of their own, so (unlike setFrame) the
// content rect IS the box's only rect.
func (lc *ctx) setTextFrame(ref boxtree.BoxRef, x, y, w, h float64) {
	lc.frames[ref] = Frame{
		ContentX: units.RoundHalfToEven(x), ContentY: units.RoundHalfToEven(y),
		ContentW: units.RoundHalfToEven(w), ContentH: units.RoundHalfToEven(h),
	}
}

// setFrame records a box's final geometry, rounding every coordinate
// half-to-even at the point of assignment (spec.md §4.5).
func (lc *ctx) setFrame(ref boxtree.BoxRef, x, y, contentW, contentH float64, s style.Computed, containingWidth float64) {
	marginLeft, marginRight := resolveMargins(s, containingWidth, contentW)
	f := Frame{
		ContentX: units.RoundHalfToEven(x + marginLeft + resolveLenW(s.BorderWidth.Left, containingWidth, s) + resolveLenW(s.Padding.Left, containingWidth, s)),
		ContentY: units.RoundHalfToEven(y + resolveLenW(s.Margin.Top, containingWidth, s) + resolveLenW(s.BorderWidth.Top, containingWidth, s) + resolveLenW(s.Padding.Top, containingWidth, s)),
		ContentW: units.RoundHalfToEven(contentW),
		ContentH: units.RoundHalfToEven(contentH),
		MarginTop: units.RoundHalfToEven(resolveLenW(s.Margin.Top, containingWidth, s)), MarginRight: units.RoundHalfToEven(marginRight),
		MarginBottom: units.RoundHalfToEven(resolveLenW(s.Margin.Bottom, containingWidth, s)), MarginLeft: units.RoundHalfToEven(marginLeft),
		BorderTop: units.RoundHalfToEven(resolveLenW(s.BorderWidth.Top, containingWidth, s)), BorderRight: units.RoundHalfToEven(resolveLenW(s.BorderWidth.Right, containingWidth, s)),
		BorderBottom: units.RoundHalfToEven(resolveLenW(s.BorderWidth.Bottom, containingWidth, s)), BorderLeft: units.RoundHalfToEven(resolveLenW(s.BorderWidth.Left, containingWidth, s)),
		PaddingTop: units.RoundHalfToEven(resolveLenW(s.Padding.Top, containingWidth, s)), PaddingRight: units.RoundHalfToEven(resolveLenW(s.Padding.Right, containingWidth, s)),
		PaddingBottom: units.RoundHalfToEven(resolveLenW(s.Padding.Bottom, containingWidth, s)), PaddingLeft: units.RoundHalfToEven(resolveLenW(s.Padding.Left, containingWidth, s)),
	}
	lc.frames[ref] = f
}

// layoutAbsolute lays out an absolutely/fixed positioned box against
// the nearest positioned ancestor's padding box — approximated here by
// the immediate containing block passed in, since a full abspos model
// needs a containing-block stack the caller threads through; static
// position falls back to the flow position it would have had.
func (lc *ctx) layoutAbsolute(ref boxtree.BoxRef, staticX, staticY, availWidth float64, s style.Computed) {
	x, y := staticX, staticY
	if !s.Left.IsAuto() {
		x = staticX + resolveLenW(s.Left, availWidth, s)
	}
	if !s.Top.IsAuto() {
		y = staticY + resolveLenW(s.Top, availWidth, s)
	}
	contentW := resolveWidth(s, availWidth)
	lc.layoutBlockContainer(ref, x, y, contentW, s, nil) // positioned boxes establish their own BFC
}

// layoutInlineContext lays out a run of inline-level children (text
// and inline boxes) into line boxes, per spec.md §4.5's inline
// formatting context: break opportunities after collapsible
// whitespace, each line no wider than availWidth. Every fragment sits
// at the top of its line; vertical-align is not read, and fragments
// are not aligned on a shared baseline.
func (lc *ctx) layoutInlineContext(ref boxtree.BoxRef, x, y, availWidth float64, s style.Computed, children []boxtree.BoxRef, ambient []floatEntry) float64 {
	fh, fm := lc.fontFor(s)
	lineHeight := s.LineHeight
	if lineHeight <= 0 {
		lineHeight = fm.Height
	}

	cursorX := 0.0
	cursorY := 0.0
	lineHasContent := false
	insetLeft, insetRight := floatInsets(ambient, x, x+availWidth, y+cursorY, y+cursorY+lineHeight)
	lineAvail := availWidth - insetLeft - insetRight
	if lineAvail < 0 {
		lineAvail = 0
	}

	advanceLine := func() {
		cursorY += lineHeight
		cursorX = 0
		lineHasContent = false
		insetLeft, insetRight = floatInsets(ambient, x, x+availWidth, y+cursorY, y+cursorY+lineHeight)
		lineAvail = availWidth - insetLeft - insetRight
		if lineAvail < 0 {
			lineAvail = 0
		}
	}

	for _, child := range children {
		switch lc.boxes.Kind(child) {
		case boxtree.KindText:
			text := textutil.CollapseWhitespace(lc.boxes.Text(child))
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			startX, startY, startInset := cursorX, cursorY, insetLeft
			lines := 1
			for _, word := range textutil.Words(text) {
				w := lc.textWidth(fh, word, s)
				spaceW := lc.textWidth(fh, " ", s)
				if lineHasContent && cursorX+spaceW+w > lineAvail {
					advanceLine()
					lines++
					startX = 0
				} else if lineHasContent {
					cursorX += spaceW
				}
				cursorX += w
				lineHasContent = true
			}
			// A run that wrapped spans the full available width on its
			// middle lines; a single-line run is exactly as wide as the
			// text measured (good enough for hit-testing and painting
			// without a per-line fragment list). Both use the first
			// line's float inset, an approximation shared with the
			// single-fragment-per-text-node model above.
			lineW := cursorX - startX
			if lines > 1 {
				lineW = lineAvail
			}
			lc.setTextFrame(child, x+startInset+startX, y+startY, lineW, float64(lines)*lineHeight)
		default:
			cs := lc.boxes.Style(child)
			if cs.Display == style.DisplayNone {
				continue
			}
			// Inline-level element: lay its own content out at a
			// shrink-to-fit width (the remaining space on the current
			// line), then place its margin box inline.
			remaining := lineAvail - cursorX
			if remaining < 0 {
				remaining = lineAvail
			}
			childH := lc.layoutBlockContainer(child, x+insetLeft+cursorX, y+cursorY, remaining, cs, nil)
			f := lc.frames[child]
			b := f.BorderRect()
			if lineHasContent && cursorX+float64(b.W) > lineAvail {
				advanceLine()
				lc.setFrame(child, x+insetLeft+cursorX-x, y+cursorY-y, float64(f.ContentW), childH, cs, lineAvail)
			}
			cursorX += float64(b.W)
			lineHasContent = true
		}
	}
	if lineHasContent || cursorY == 0 {
		cursorY += lineHeight
	}
	return cursorY
}
