package layout

import (
	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/style"
	"github.com/arturoeanton/gockore/units"
)

// flexItem is one flex child's resolved sizing state during the
// single-pass grow/shrink resolution below.
type flexItem struct {
	ref       boxtree.BoxRef
	style     style.Computed
	base      float64 // flex-basis resolved to px
	main      float64 // current main-axis size
	cross     float64
	grow      float64
	shrink    float64
	marginMainStart, marginMainEnd float64
}

// layoutFlexContainer implements CSS Flexible Box Layout's single-line
// case (spec.md's flexbox supplement): resolve each item's flex-basis,
// distribute free space via flex-grow/flex-shrink (row direction only),
// then place items one after another from the container's left (row)
// or top (column) content edge, in reverse order for the *-reverse
// directions, each at the container's cross-start edge. justify-content, align-items and
// align-self are not read, so free space is never distributed between
// items and items are not aligned on the cross axis.
// Multi-line wrapping is not modeled; flex-wrap:wrap
// containers lay out as a single line, which degrades gracefully
// rather than overflowing silently.
func (lc *ctx) layoutFlexContainer(ref boxtree.BoxRef, x, y, availWidth float64, s style.Computed) float64 {
	contentWidth := resolveWidth(s, availWidth)
	row := s.FlexDirection == style.FlexRow || s.FlexDirection == style.FlexRowReverse
	reverse := s.FlexDirection == style.FlexRowReverse || s.FlexDirection == style.FlexColumnReverse

	children := lc.boxes.Children(ref)
	items := make([]*flexItem, 0, len(children))
	for _, c := range children {
		if lc.boxes.Kind(c) == boxtree.KindText {
			continue
		}
		cs := lc.boxes.Style(c)
		if cs.Display == style.DisplayNone {
			continue
		}
		mainAvail := contentWidth
		var base float64
		if cs.FlexBasis.IsAuto() {
			if row {
				base = resolveWidth(cs, contentWidth)
			} else {
				base = 0 // column auto-basis from content height is resolved during measurement below
			}
		} else {
			base = resolveLenW(cs.FlexBasis, mainAvail, cs)
		}
		items = append(items, &flexItem{
			ref: c, style: cs, base: base, main: base,
			grow: cs.FlexGrow, shrink: cs.FlexShrink,
			marginMainStart: resolveLenW(cs.Margin.Left, mainAvail, cs),
			marginMainEnd:   resolveLenW(cs.Margin.Right, mainAvail, cs),
		})
	}

	gap := resolveLenW(s.Gap, contentWidth, s)
	totalGap := 0.0
	if len(items) > 1 {
		totalGap = gap * float64(len(items)-1)
	}

	if row {
		lc.resolveFlexMainAxis(items, contentWidth-totalGap)
	} else {
		// Column containers measure each item's natural height first
		// (laid out at the full content width), then that becomes its
		// main-axis size. flex-grow/shrink are not applied in column
		// direction, even against an explicit container height.
		for _, it := range items {
			h := lc.layoutBlockLevelChild(it.ref, 0, 0, contentWidth, it.style, nil)
			it.base, it.main = h, h
		}
	}

	mainPos := 0.0
	n := len(items)
	order := make([]int, n)
	for i := range order {
		if reverse {
			order[i] = n - 1 - i
		} else {
			order[i] = i
		}
	}

	maxCross := 0.0
	for idx, i := range order {
		it := items[i]
		if row {
			// Pin the item's width to its resolved main size so the
			// recursive block layout doesn't re-resolve width/edges
			// against availWidth a second time.
			fixed := it.style
			fixed.Width = units.Length{Value: it.main, Unit: units.UnitPx}
			fixed.BoxSizing = style.BoxSizingContent
			itemX := mainPos + it.marginMainStart
			h := lc.layoutBlockLevelChild(it.ref, x+itemX, y, contentWidth, fixed, nil)
			it.cross = h
			if h > maxCross {
				maxCross = h
			}
			mainPos += it.marginMainStart + it.main + it.marginMainEnd
		} else {
			fixed := it.style
			fixed.Height = units.Length{Value: it.main, Unit: units.UnitPx}
			lc.layoutBlockLevelChild(it.ref, x, y+mainPos, contentWidth, fixed, nil)
			if contentWidth > maxCross {
				maxCross = contentWidth
			}
			mainPos += it.main
		}
		if idx < len(order)-1 {
			mainPos += gap
		}
	}

	var contentHeight float64
	if row {
		contentHeight = maxCross
	} else {
		contentHeight = mainPos
	}
	if !s.Height.IsAuto() {
		contentHeight = resolveLenH(s, contentHeight)
	}
	lc.setFrame(ref, x, y, contentWidth, contentHeight, s, availWidth)
	return contentHeight
}

// resolveFlexMainAxis distributes free space among row-direction items
// via flex-grow (positive free space) or flex-shrink (negative free
// space), per CSS Flexbox's simplified single-iteration resolution.
func (lc *ctx) resolveFlexMainAxis(items []*flexItem, containerMain float64) {
	totalBase := 0.0
	for _, it := range items {
		totalBase += it.marginMainStart + it.base + it.marginMainEnd
	}
	free := containerMain - totalBase
	if free > 0 {
		totalGrow := 0.0
		for _, it := range items {
			totalGrow += it.grow
		}
		if totalGrow > 0 {
			for _, it := range items {
				it.main = it.base + free*(it.grow/totalGrow)
			}
		}
	} else if free < 0 {
		totalShrinkBase := 0.0
		for _, it := range items {
			totalShrinkBase += it.shrink * it.base
		}
		if totalShrinkBase > 0 {
			for _, it := range items {
				ratio := (it.shrink * it.base) / totalShrinkBase
				it.main = it.base + free*ratio
				if it.main < 0 {
					it.main = 0
				}
			}
		}
	}
}
