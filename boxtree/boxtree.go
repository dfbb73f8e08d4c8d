// Package boxtree builds the render tree: one Box per rendered DOM
// element (or synthesized anonymous wrapper), skipping display:none
// subtrees and normalizing inline/block content mixing, per spec.md §3.5/§9.
package boxtree

import (
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/style"
	"github.com/arturoeanton/gockore/textutil"
)

// BoxRef indexes into a Tree's arena-parallel box storage, mirroring
// dom.NodeRef's integer-index design (spec.md §9: no shared-pointer
// back-references between box and layout data).
type BoxRef int32

// NilBox is the "no box" sentinel.
const NilBox BoxRef = -1

// Kind distinguishes a real element box from a synthesized wrapper.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindAnonymousBlock  // wraps runs of inline content among block siblings
	KindAnonymousInline // wraps bare text at the top level of a block container
	KindTableWrapper    // synthesized table-row around a display:table-cell run missing its row
)

type box struct {
	Kind   Kind
	Node   dom.NodeRef // valid for KindElement/KindText; NilRef for anonymous boxes
	Style  style.Computed
	Parent BoxRef
	Children []BoxRef
	Text   string // decoded, not yet whitespace-collapsed; valid for KindText
	ColSpan, RowSpan int // valid for KindElement boxes with Display == DisplayTableCell; 1 if unset
}

// Tree owns every box for one document render tree.
type Tree struct {
	boxes []box
	Root  BoxRef
}

func (t *Tree) alloc(b box) BoxRef {
	t.boxes = append(t.boxes, b)
	return BoxRef(len(t.boxes) - 1)
}

func (t *Tree) Kind(ref BoxRef) Kind           { return t.boxes[ref].Kind }
func (t *Tree) Node(ref BoxRef) dom.NodeRef    { return t.boxes[ref].Node }
func (t *Tree) Style(ref BoxRef) style.Computed { return t.boxes[ref].Style }
func (t *Tree) Parent(ref BoxRef) BoxRef       { return t.boxes[ref].Parent }
func (t *Tree) Children(ref BoxRef) []BoxRef   { return t.boxes[ref].Children }
func (t *Tree) Text(ref BoxRef) string         { return t.boxes[ref].Text }
func (t *Tree) Len() int                       { return len(t.boxes) }

// ColSpan/RowSpan report a table-cell box's span, defaulting to 1 for
// any box that isn't a cell or carries no explicit attribute.
func (t *Tree) ColSpan(ref BoxRef) int {
	if n := t.boxes[ref].ColSpan; n > 0 {
		return n
	}
	return 1
}
func (t *Tree) RowSpan(ref BoxRef) int {
	if n := t.boxes[ref].RowSpan; n > 0 {
		return n
	}
	return 1
}

// SetStyle overwrites a box's computed style in place (used by layout
// for anonymous boxes, whose style is synthesized rather than cascaded).
func (t *Tree) SetStyle(ref BoxRef, s style.Computed) { t.boxes[ref].Style = s }

// Build constructs the render tree for the subtree rooted at root,
// using st for every element's computed style. Elements (and their
// entire subtree) with display:none are omitted entirely, per spec.md
// §4.4's "display:none removes the element and its descendants from
// the render tree."
func Build(arena *dom.Arena, root dom.NodeRef, st *style.Tree) *Tree {
	t := &Tree{}
	t.Root = t.buildElement(arena, root, st)
	return t
}

func (t *Tree) buildElement(arena *dom.Arena, ref dom.NodeRef, st *style.Tree) BoxRef {
	computed, ok := st.Get(ref)
	if !ok || computed.Display == style.DisplayNone {
		return NilBox
	}

	nb := box{Kind: KindElement, Node: ref, Style: computed, Parent: NilBox}
	if computed.Display == style.DisplayTableCell {
		nb.ColSpan = parseSpanAttr(arena, ref, "colspan")
		nb.RowSpan = parseSpanAttr(arena, ref, "rowspan")
	}
	b := t.alloc(nb)

	var rawChildren []BoxRef
	for _, child := range arena.Children(ref) {
		switch arena.Type(child) {
		case dom.NodeElement:
			if cb := t.buildElement(arena, child, st); cb != NilBox {
				t.boxes[cb].Parent = b
				rawChildren = append(rawChildren, cb)
			}
		case dom.NodeText, dom.NodeCData:
			text := arena.Content(child)
			if text == "" {
				continue
			}
			tb := t.alloc(box{Kind: KindText, Node: child, Parent: b, Text: text})
			rawChildren = append(rawChildren, tb)
		case dom.NodeSpace:
			// Collapsible inter-tag whitespace is kept as a text box:
			// CollapseWhitespace reduces a non-empty run to " ", never
			// to "", so the check below does not drop any run, and
			// layout's inline algorithm does the actual collapsing.
			content := arena.Content(child)
			if textutil.CollapseWhitespace(content) == "" && computed.WhiteSpace == style.WhiteSpaceNormal {
				continue
			}
			tb := t.alloc(box{Kind: KindText, Node: child, Parent: b, Text: content})
			rawChildren = append(rawChildren, tb)
		}
	}

	children := t.wrapMixedContent(rawChildren, computed)
	if computed.Display == style.DisplayTable || computed.Display == style.DisplayTableRowGroup {
		children = t.wrapTableRows(children, computed)
	}
	t.boxes[b].Children = children
	for _, c := range t.boxes[b].Children {
		t.boxes[c].Parent = b
	}
	return b
}

// parseSpanAttr reads a colspan/rowspan attribute, defaulting to 1 for
// anything missing or not a positive integer.
func parseSpanAttr(arena *dom.Arena, ref dom.NodeRef, name string) int {
	v, ok := arena.Attr(ref, name)
	if !ok {
		return 1
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return 1
		}
		n = n*10 + int(c-'0')
	}
	if n <= 0 {
		return 1
	}
	return n
}

// wrapMixedContent implements the anonymous-box rule (spec.md §4.4/§9):
// if a block-level container has a mix of block-level and inline-level
// children, consecutive runs of inline-level children are wrapped in
// an anonymous block box so the block layout algorithm only ever sees
// block-level siblings.
func (t *Tree) wrapMixedContent(children []BoxRef, parentStyle style.Computed) []BoxRef {
	if len(children) == 0 || !parentStyle.IsBlockLevel() {
		return children
	}
	hasBlock := false
	hasInline := false
	for _, c := range children {
		if t.isBlockLevelBox(c) {
			hasBlock = true
		} else {
			hasInline = true
		}
	}
	if !hasBlock || !hasInline {
		return children
	}

	var out []BoxRef
	var run []BoxRef
	flush := func() {
		if len(run) == 0 {
			return
		}
		anon := t.alloc(box{Kind: KindAnonymousBlock, Node: dom.NilRef, Style: anonymousBlockStyle(parentStyle), Children: run})
		for _, c := range run {
			t.boxes[c].Parent = anon
		}
		out = append(out, anon)
		run = nil
	}
	for _, c := range children {
		if t.isBlockLevelBox(c) {
			flush()
			out = append(out, c)
		} else {
			run = append(run, c)
		}
	}
	flush()
	return out
}

// wrapTableRows synthesizes anonymous table-row wrappers (spec.md
// §4.4's "table > (caption | row-group) > row > cell") around any run
// of table-cell children found directly under a table or row-group
// box, which authors sometimes omit. Row-group wrapping around stray
// rows is not synthesized: rows laid out directly under their table
// behave identically to rows under an anonymous row-group for this
// engine's column-width algorithm, so the extra wrapper would add a
// tree level without changing geometry.
func (t *Tree) wrapTableRows(children []BoxRef, parentStyle style.Computed) []BoxRef {
	hasCell := false
	for _, c := range children {
		if t.Kind(c) != KindText && t.Style(c).Display == style.DisplayTableCell {
			hasCell = true
			break
		}
	}
	if !hasCell {
		return children
	}

	var out []BoxRef
	var run []BoxRef
	flush := func() {
		if len(run) == 0 {
			return
		}
		row := t.alloc(box{Kind: KindTableWrapper, Node: dom.NilRef, Style: tableWrapperStyle(parentStyle, style.DisplayTableRow), Children: run})
		for _, c := range run {
			t.boxes[c].Parent = row
		}
		out = append(out, row)
		run = nil
	}
	for _, c := range children {
		if t.Kind(c) != KindText && t.Style(c).Display == style.DisplayTableCell {
			run = append(run, c)
			continue
		}
		flush()
		out = append(out, c)
	}
	flush()
	return out
}

// tableWrapperStyle derives an anonymous table-row wrapper's style the
// same way anonymousBlockStyle does for block wrappers.
func tableWrapperStyle(parentStyle style.Computed, display style.Display) style.Computed {
	s := style.Initial(parentStyle.FontSizePx)
	s.Display = display
	s.Color = parentStyle.Color
	s.FontFamily = parentStyle.FontFamily
	s.FontSizePx = parentStyle.FontSizePx
	s.FontWeight = parentStyle.FontWeight
	s.LineHeight = parentStyle.LineHeight
	s.Visibility = parentStyle.Visibility
	return s
}

func (t *Tree) isBlockLevelBox(ref BoxRef) bool {
	if t.Kind(ref) == KindText {
		return false
	}
	return t.Style(ref).IsBlockLevel()
}

// anonymousBlockStyle derives the style an anonymous block wrapper uses:
// display:block, everything else at its initial value except the
// inherited properties it picks up from parentStyle the same way a real
// child would (spec.md §4.3: anonymous boxes still participate in
// inheritance).
func anonymousBlockStyle(parentStyle style.Computed) style.Computed {
	s := style.Initial(parentStyle.FontSizePx)
	s.Display = style.DisplayBlock
	s.Color = parentStyle.Color
	s.FontFamily = parentStyle.FontFamily
	s.FontSizePx = parentStyle.FontSizePx
	s.FontWeight = parentStyle.FontWeight
	s.LineHeight = parentStyle.LineHeight
	s.TextAlign = parentStyle.TextAlign
	s.WhiteSpace = parentStyle.WhiteSpace
	s.Visibility = parentStyle.Visibility
	return s
}
