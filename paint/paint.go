// Package paint walks a laid-out render tree and issues the container
// draw calls for a given clip rect, in the fixed per-box order spec.md
// §4.6 requires: clip push, background, borders, this box's own text/
// markers, in-flow children, floats, z-ordered absolute descendants,
// clip pop. The core never touches a drawing surface itself — every
// pixel operation is a call on container.Container, grounded on the
// teacher's paintBox walk in gocko/paint/painter.go.
package paint

import (
	"sort"

	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/container"
	"github.com/arturoeanton/gockore/layout"
	"github.com/arturoeanton/gockore/style"
)

// Walker carries the resources a paint pass needs: the container to
// draw through, the box/layout trees it reads geometry and style from.
type Walker struct {
	c      container.Container
	boxes  *boxtree.Tree
	frames *layout.Tree
}

// New returns a Walker over one render/layout tree pair.
func New(c container.Container, boxes *boxtree.Tree, frames *layout.Tree) *Walker {
	return &Walker{c: c, boxes: boxes, frames: frames}
}

// Draw paints boxes within clip, offset by (dx, dy) — spec.md §6.2's
// draw(clip, dx, dy) entry point. The root box is always visited;
// callers wanting a sub-region pass a clip that excludes the rest.
func (w *Walker) Draw(clip container.Rect, dx, dy int) {
	w.c.SetClip(clip, container.Radii{})
	w.paintBox(w.boxes.Root, dx, dy)
	w.c.DelClip()
}

func (w *Walker) paintBox(ref boxtree.BoxRef, dx, dy int) {
	if ref == boxtree.NilBox {
		return
	}
	isText := w.boxes.Kind(ref) == boxtree.KindText
	s := w.boxes.Style(ref)
	if isText {
		// Text boxes carry no style of their own (boxtree only
		// computes style per element); they paint using the
		// containing element's computed style instead.
		s = w.boxes.Style(w.boxes.Parent(ref))
	}
	if !s.Visibility {
		// Invisible boxes still occupy layout space but paint nothing,
		// including their subtree (spec.md §4.4's visibility:hidden).
		return
	}
	f := w.frames.Frame(ref)
	border := offsetRect(f.BorderRect(), dx, dy)

	if isText {
		w.paintText(ref, s, offsetRect(contentRect(f), dx, dy))
		return
	}

	clipped := s.OverflowX != style.OverflowVisible || s.OverflowY != style.OverflowVisible
	if clipped {
		w.c.SetClip(border, container.Radii{})
	}

	w.paintBackground(ref, s, border)
	w.paintBorders(ref, s, border)

	if s.Display == style.DisplayListItem {
		w.paintListMarker(ref, s, offsetRect(contentRect(f), dx, dy))
	}

	var floats, absolutes []boxtree.BoxRef
	for _, child := range w.boxes.Children(ref) {
		cs := w.boxes.Style(child)
		switch {
		case cs.Position == style.PositionAbsolute || cs.Position == style.PositionFixed:
			absolutes = append(absolutes, child)
		case cs.Float != style.FloatNone:
			floats = append(floats, child)
		default:
			w.paintBox(child, dx, dy)
		}
	}

	for _, fl := range floats {
		w.paintBox(fl, dx, dy)
	}

	sort.SliceStable(absolutes, func(i, j int) bool {
		return w.boxes.Style(absolutes[i]).ZIndex < w.boxes.Style(absolutes[j]).ZIndex
	})
	for _, ab := range absolutes {
		w.paintBox(ab, dx, dy)
	}

	if clipped {
		w.c.DelClip()
	}
}

func (w *Walker) paintBackground(ref boxtree.BoxRef, s style.Computed, border container.Rect) {
	if s.BackgroundColor.A == 0 {
		return
	}
	radii := borderRadii(s)
	w.c.DrawSolidFill(nil, border, radii, s.BackgroundColor)
}

func (w *Walker) paintBorders(ref boxtree.BoxRef, s style.Computed, border container.Rect) {
	f := w.frames.Frame(ref)
	if f.BorderTop == 0 && f.BorderRight == 0 && f.BorderBottom == 0 && f.BorderLeft == 0 {
		return
	}
	b := container.Borders{
		Top:    container.BorderSide{WidthPx: f.BorderTop, Style: s.BorderStyle[0], Color: s.BorderColor[0]},
		Right:  container.BorderSide{WidthPx: f.BorderRight, Style: s.BorderStyle[1], Color: s.BorderColor[1]},
		Bottom: container.BorderSide{WidthPx: f.BorderBottom, Style: s.BorderStyle[2], Color: s.BorderColor[2]},
		Left:   container.BorderSide{WidthPx: f.BorderLeft, Style: s.BorderStyle[3], Color: s.BorderColor[3]},
		Radii:  borderRadii(s),
	}
	w.c.DrawBorders(nil, b, border, false)
}

// paintListMarker draws this list item's marker glyph (disc/decimal/...)
// to the left of its content box, per spec.md §4.6 step 4. The ordinal
// for numbered types counts preceding list-item siblings under the
// same parent, matching the "outside" marker position litehtml and
// browsers default to; "inside" markers are not yet offset into the
// content flow.
func (w *Walker) paintListMarker(ref boxtree.BoxRef, s style.Computed, content container.Rect) {
	if s.ListStyleType == "none" {
		return
	}
	index := 1
	if parent := w.boxes.Parent(ref); parent != boxtree.NilBox {
		for _, sib := range w.boxes.Children(parent) {
			if sib == ref {
				break
			}
			if w.boxes.Style(sib).Display == style.DisplayListItem {
				index++
			}
		}
	}
	markerW := 16
	rect := container.Rect{X: content.X - markerW, Y: content.Y, W: markerW, H: content.H}
	w.c.DrawListMarker(nil, container.ListMarker{Type: s.ListStyleType, Index: index, Rect: rect, Color: s.Color})
}

func (w *Walker) paintText(ref boxtree.BoxRef, s style.Computed, rect container.Rect) {
	text := w.boxes.Text(ref)
	if text == "" {
		return
	}
	h, _ := fontHandleFor(w.c, s)
	w.c.DrawText(nil, text, h, s.Color, rect)
}

// fontHandleFor re-resolves a font handle for paint by calling the
// container's CreateFont again with the text's descriptor; the walker
// keeps no font cache of its own, so whether the host reuses the font
// layout created is up to the container.
func fontHandleFor(c container.Container, s style.Computed) (container.FontHandle, container.FontMetrics) {
	return c.CreateFont(container.FontDescriptor{
		FamilyList: splitFamilies(s.FontFamily),
		SizePx:     s.FontSizePx,
		Weight:     s.FontWeight,
		Italic:     s.Italic,
		Decoration: s.TextDecoLine,
	})
}

func splitFamilies(csv string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if i > start {
				out = append(out, trimSpace(csv[start:i]))
			}
			start = i + 1
		}
	}
	if len(out) == 0 {
		return []string{"sans-serif"}
	}
	return out
}

func trimSpace(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

func borderRadii(s style.Computed) container.Radii {
	return container.Radii{}
}

func contentRect(f layout.Frame) layout.Rect {
	return layout.Rect{X: f.ContentX, Y: f.ContentY, W: f.ContentW, H: f.ContentH}
}

func offsetRect(r layout.Rect, dx, dy int) container.Rect {
	return container.Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}
