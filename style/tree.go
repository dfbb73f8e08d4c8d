package style

import (
	"strings"

	"github.com/arturoeanton/gockore/colors"
	"github.com/arturoeanton/gockore/cssom"
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/selector"
)

// Tree holds the computed style for every element in one dom.Arena, in
// a map keyed by dom.NodeRef kept beside the arena — the "style lives
// in its own structure, not on dom.Node" design spec.md §9
// mandates, since embedding it on the node would force an import cycle
// between dom and style.
type Tree struct {
	byNode map[dom.NodeRef]Computed
}

// ComputeTree resolves the cascade for every element in arena rooted
// at root, given the already-media-filtered, already-compiled sheet in
// cascade order (user-agent, then user, then author — Compile/Origin
// on the rules themselves is what the cascade actually uses; sheet
// order here only needs to include every applicable rule).
func ComputeTree(sheet CompiledSheet, arena *dom.Arena, root dom.NodeRef, state selector.MatchState, sysColor colors.SystemColorResolver) *Tree {
	t := &Tree{byNode: make(map[dom.NodeRef]Computed)}
	rootStyle := Initial(16)
	t.resolveSubtree(sheet, arena, root, rootStyle, state, sysColor)
	return t
}

func (t *Tree) resolveSubtree(sheet CompiledSheet, arena *dom.Arena, ref dom.NodeRef, parent Computed, state selector.MatchState, sysColor colors.SystemColorResolver) {
	if arena.Type(ref) != dom.NodeElement {
		return
	}
	var inline []cssom.Declaration
	if styleAttr, ok := arena.Attr(ref, "style"); ok {
		inline = cssom.ParseInlineStyle(styleAttr)
	}
	computed := Resolve(sheet, arena, ref, inline, parent, state, sysColor)

	// <script>/<style>/<template> never participate in rendering
	// regardless of any display override an author rule sets.
	switch arena.Tag(ref) {
	case dom.TagScript, dom.TagStyle, dom.TagTemplate:
		computed.Display = DisplayNone
	}

	t.byNode[ref] = computed
	for _, child := range arena.Children(ref) {
		t.resolveSubtree(sheet, arena, child, computed, state, sysColor)
	}
}

// Get returns the computed style for ref, or the zero Computed if ref
// was never visited (non-element nodes, or a ref outside this tree).
func (t *Tree) Get(ref dom.NodeRef) (Computed, bool) {
	c, ok := t.byNode[ref]
	return c, ok
}

// UserAgentSheet is the built-in default stylesheet every document
// starts from (spec.md §4.2's "user-agent" origin), covering the
// handful of elements whose default rendering the layout engine
// otherwise has no way to know about.
const UserAgentSheet = `
html, body, div, section, article, header, footer, nav, main, aside, p, ul, ol, li, h1, h2, h3, h4, h5, h6, table, form, figure, figcaption { display: block; }
span, a, b, strong, i, em, label, code, small { display: inline; }
li { display: list-item; }
table { display: table; }
tr { display: table-row; }
td, th { display: table-cell; }
thead, tbody, tfoot { display: table-row-group; }
head, script, style, title, template { display: none; }
b, strong { font-weight: bold; }
i, em { font-style: italic; }
h1 { font-size: 32px; }
h2 { font-size: 24px; }
h3 { font-size: 19px; }
h4 { font-size: 16px; }
h5 { font-size: 13px; }
h6 { font-size: 11px; }
a { color: #0000ee; text-decoration: underline; }
p, ul, ol, h1, h2, h3, h4, h5, h6 { margin-top: 1em; margin-bottom: 1em; }
ul, ol { padding-left: 40px; }
body { margin: 8px; }
`

// ParseUserAgentSheet compiles UserAgentSheet once; callers typically
// cache the result and reuse it across documents.
func ParseUserAgentSheet() CompiledSheet {
	return Compile(cssom.Parse(strings.TrimSpace(UserAgentSheet), cssom.OriginUserAgent))
}
