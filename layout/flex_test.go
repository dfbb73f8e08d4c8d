package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/container"
	"github.com/arturoeanton/gockore/cssom"
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/selector"
	"github.com/arturoeanton/gockore/style"
)

func runLayout(t *testing.T, html, css string, widthPx int) (*boxtree.Tree, *Tree) {
	t.Helper()
	arena, root := dom.ParseHTML(html)
	sheet := style.Compile(cssom.Parse(css, cssom.OriginAuthor))
	st := style.ComputeTree(sheet, arena, root, selector.NopState{}, nil)
	boxes := boxtree.Build(arena, root, st)
	c := container.NewTestContainer(widthPx, 480)
	tree := Run(boxes, c, widthPx)
	return boxes, tree
}

func firstElementChild(boxes *boxtree.Tree, ref boxtree.BoxRef, tag func(boxtree.BoxRef) bool) boxtree.BoxRef {
	for _, child := range boxes.Children(ref) {
		if tag(child) {
			return child
		}
	}
	return boxtree.NilBox
}

// TestFlexRow_EqualGrow_SplitsWidthEvenly lays out a row flex container
// with two children of flex: 1 1 0 and checks they split the available
// width evenly with the gap subtracted first.
func TestFlexRow_EqualGrow_SplitsWidthEvenly(t *testing.T) {
	html := `<html><body><div class="row"><div class="item">a</div><div class="item">b</div></div></body></html>`
	css := `.row { display: flex; gap: 10px; } .item { flex-grow: 1; flex-basis: 0; }`
	boxes, tree := runLayout(t, html, css, 400)

	body := firstElementChild(boxes, boxes.Root, func(r boxtree.BoxRef) bool {
		return boxes.Kind(r) == boxtree.KindElement
	})
	require.NotEqual(t, boxtree.NilBox, body)
	row := firstElementChild(boxes, body, func(r boxtree.BoxRef) bool {
		return boxes.Kind(r) == boxtree.KindElement && boxes.Style(r).Display == style.DisplayFlex
	})
	require.NotEqual(t, boxtree.NilBox, row, "expected to find the flex row box under html/body")

	children := boxes.Children(row)
	require.Len(t, children, 2)

	f0 := tree.Frame(children[0])
	f1 := tree.Frame(children[1])

	assert.InDelta(t, f0.ContentW, f1.ContentW, 1, "equal flex-grow children split remaining space evenly")
	assert.Less(t, f0.ContentX, f1.ContentX, "first item sits left of the second")
	assert.InDelta(t, f1.ContentX-(f0.ContentX+f0.ContentW), 10, 1, "the gap separates the two items")
}

// TestFlexRow_Reverse_FlipsOrder checks that row-reverse paints/lays
// out items in mirrored visual order without changing DOM order.
func TestFlexRow_Reverse_FlipsOrder(t *testing.T) {
	html := `<html><body><div class="row"><div class="item">a</div><div class="item">b</div></div></body></html>`
	css := `.row { display: flex; flex-direction: row-reverse; } .item { flex-grow: 1; flex-basis: 0; }`
	boxes, tree := runLayout(t, html, css, 400)

	body := firstElementChild(boxes, boxes.Root, func(r boxtree.BoxRef) bool {
		return boxes.Kind(r) == boxtree.KindElement
	})
	require.NotEqual(t, boxtree.NilBox, body)
	row := firstElementChild(boxes, body, func(r boxtree.BoxRef) bool {
		return boxes.Kind(r) == boxtree.KindElement && boxes.Style(r).Display == style.DisplayFlex
	})
	require.NotEqual(t, boxtree.NilBox, row)
	children := boxes.Children(row)
	require.Len(t, children, 2)

	f0 := tree.Frame(children[0]) // "a", first in DOM order
	f1 := tree.Frame(children[1]) // "b", second in DOM order
	assert.Greater(t, f0.ContentX, f1.ContentX, "row-reverse paints the first DOM child on the right")
}
