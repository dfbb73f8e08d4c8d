package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/gockore/cssom"
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/selector"
)

func computedFor(t *testing.T, html, css, id string) Computed {
	t.Helper()
	arena, root := dom.ParseHTML(html)
	sheet := Compile(cssom.Parse(css, cssom.OriginAuthor))
	st := ComputeTree(sheet, arena, root, selector.NopState{}, nil)

	var found dom.NodeRef = dom.NilRef
	arena.Walk(root, func(ref dom.NodeRef) bool {
		if arena.Type(ref) != dom.NodeElement {
			return true
		}
		if v, ok := arena.Attr(ref, "id"); ok && v == id {
			found = ref
			return false
		}
		return true
	})
	require.NotEqual(t, dom.NilRef, found, "id %q not found", id)

	c, ok := st.Get(found)
	require.True(t, ok)
	return c
}

func TestListStyle_Defaults(t *testing.T) {
	c := computedFor(t, `<ul><li id="x">item</li></ul>`, ``, "x")
	assert.Equal(t, "disc", c.ListStyleType)
	assert.Equal(t, "outside", c.ListStylePosition)
}

func TestListStyle_Longhands(t *testing.T) {
	css := `#x { list-style-type: decimal; list-style-position: inside; }`
	c := computedFor(t, `<ul><li id="x">item</li></ul>`, css, "x")
	assert.Equal(t, "decimal", c.ListStyleType)
	assert.Equal(t, "inside", c.ListStylePosition)
}

func TestListStyle_Shorthand(t *testing.T) {
	css := `#x { list-style: square inside; }`
	c := computedFor(t, `<ul><li id="x">item</li></ul>`, css, "x")
	assert.Equal(t, "square", c.ListStyleType)
	assert.Equal(t, "inside", c.ListStylePosition)
}

func TestListStyle_NoneSuppressesMarker(t *testing.T) {
	css := `#x { list-style-type: none; }`
	c := computedFor(t, `<ul><li id="x">item</li></ul>`, css, "x")
	assert.Equal(t, "none", c.ListStyleType)
}
