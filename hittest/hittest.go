// Package hittest implements the pure recursive render-tree walk
// spec.md §4.7 describes: map a point to the deepest box containing
// it, and track :hover/:active/:focus element state so the selector
// package's MatchState can answer those pseudo-classes on re-resolve.
package hittest

import (
	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/layout"
)

// Rect mirrors layout.Rect for callers that don't otherwise import layout.
type Rect = layout.Rect

// State tracks the live :hover/:active/:focus/:visited sets across one
// document's DOM nodes and implements selector.MatchState, so a style
// re-resolve after a mouse event sees the current interaction state.
type State struct {
	hover   map[dom.NodeRef]bool
	active  map[dom.NodeRef]bool
	focus   map[dom.NodeRef]bool
	visited map[dom.NodeRef]bool
}

// NewState returns hover/active/focus/visited tracking, empty at the
// start of a document's life — state carries across re-renders since
// dom.NodeRef identity (unlike BoxRef) survives a render tree rebuild.
func NewState() *State {
	return &State{
		hover: map[dom.NodeRef]bool{}, active: map[dom.NodeRef]bool{},
		focus: map[dom.NodeRef]bool{}, visited: map[dom.NodeRef]bool{},
	}
}

func (s *State) IsHover(ref dom.NodeRef) bool   { return s.hover[ref] }
func (s *State) IsActive(ref dom.NodeRef) bool  { return s.active[ref] }
func (s *State) IsFocus(ref dom.NodeRef) bool   { return s.focus[ref] }
func (s *State) IsVisited(ref dom.NodeRef) bool { return s.visited[ref] }

// MarkVisited records a followed link's node as :visited; the engine
// never decides this on its own (spec.md's host owns navigation
// history), so the host calls this explicitly after following a link.
func (s *State) MarkVisited(ref dom.NodeRef) { s.visited[ref] = true }

// HitTest walks the render tree depth-first in paint order, returning
// the deepest box whose border rect contains (x, y). Later siblings
// paint over earlier ones at the same point, so among overlapping
// candidates the last one visited wins. Returns boxtree.NilBox if the
// point falls outside the root box entirely.
func HitTest(boxes *boxtree.Tree, frames *layout.Tree, x, y int) boxtree.BoxRef {
	return hitTestBox(boxes, frames, boxes.Root, x, y)
}

func hitTestBox(boxes *boxtree.Tree, frames *layout.Tree, ref boxtree.BoxRef, x, y int) boxtree.BoxRef {
	if ref == boxtree.NilBox {
		return boxtree.NilBox
	}
	b := frames.Frame(ref).BorderRect()
	if x < b.X || x >= b.X+b.W || y < b.Y || y >= b.Y+b.H {
		return boxtree.NilBox
	}

	best := ref
	for _, child := range boxes.Children(ref) {
		if hit := hitTestBox(boxes, frames, child, x, y); hit != boxtree.NilBox {
			best = hit
		}
	}
	return best
}

// nodeAncestors returns the DOM node chain for box ref and every box
// ancestor, root-first, skipping boxes with no backing DOM node
// (anonymous wrappers never match a selector, so they carry no hover
// state of their own).
func nodeAncestors(boxes *boxtree.Tree, ref boxtree.BoxRef) []dom.NodeRef {
	var chain []dom.NodeRef
	for r := ref; r != boxtree.NilBox; r = boxes.Parent(r) {
		switch boxes.Kind(r) {
		case boxtree.KindElement, boxtree.KindText:
			chain = append(chain, boxes.Node(r))
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// boxRectsFor collects the border rects of every box backed by one of
// the given DOM nodes, so a state-change notification can report
// concrete dirty rectangles rather than node identities.
func boxRectsFor(boxes *boxtree.Tree, frames *layout.Tree, nodes map[dom.NodeRef]bool) []Rect {
	var rects []Rect
	for i := 0; i < boxes.Len(); i++ {
		ref := boxtree.BoxRef(i)
		if boxes.Kind(ref) != boxtree.KindElement {
			continue
		}
		if nodes[boxes.Node(ref)] {
			rects = append(rects, frames.Frame(ref).BorderRect())
		}
	}
	return rects
}

// OnMouseOver retargets hover to exactly the ancestor chain of the box
// at (x, y), returning the border rects of every element whose hover
// state changed — spec.md §6.2's on_mouse_over(x, y) → dirty_rects.
func (s *State) OnMouseOver(boxes *boxtree.Tree, frames *layout.Tree, x, y int) []Rect {
	hit := HitTest(boxes, frames, x, y)
	newHover := map[dom.NodeRef]bool{}
	for _, n := range nodeAncestors(boxes, hit) {
		newHover[n] = true
	}

	changed := map[dom.NodeRef]bool{}
	for n := range s.hover {
		if !newHover[n] {
			changed[n] = true
		}
	}
	for n := range newHover {
		if !s.hover[n] {
			changed[n] = true
		}
	}
	s.hover = newHover
	return boxRectsFor(boxes, frames, changed)
}

// OnLButtonDown marks the ancestor chain at (x, y) active.
func (s *State) OnLButtonDown(boxes *boxtree.Tree, frames *layout.Tree, x, y int) []Rect {
	hit := HitTest(boxes, frames, x, y)
	changed := map[dom.NodeRef]bool{}
	for _, n := range nodeAncestors(boxes, hit) {
		if !s.active[n] {
			s.active[n] = true
			changed[n] = true
		}
	}
	return boxRectsFor(boxes, frames, changed)
}

// OnLButtonUp clears all active state.
func (s *State) OnLButtonUp(boxes *boxtree.Tree, frames *layout.Tree) []Rect {
	changed := s.active
	s.active = map[dom.NodeRef]bool{}
	return boxRectsFor(boxes, frames, changed)
}

// OnMouseLeave clears all hover state, as the pointer has left the
// document's viewport entirely.
func (s *State) OnMouseLeave(boxes *boxtree.Tree, frames *layout.Tree) []Rect {
	changed := s.hover
	s.hover = map[dom.NodeRef]bool{}
	return boxRectsFor(boxes, frames, changed)
}
