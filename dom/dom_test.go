package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByTag(t *testing.T, a *Arena, root NodeRef, tag TagID) NodeRef {
	t.Helper()
	var found NodeRef = NilRef
	a.Walk(root, func(ref NodeRef) bool {
		if a.Type(ref) == NodeElement && a.Tag(ref) == tag {
			found = ref
			return false
		}
		return true
	})
	require.NotEqual(t, NilRef, found, "tag %v not found", tag)
	return found
}

func TestParseHTML_BasicTree(t *testing.T) {
	a, root := ParseHTML(`<html><body><p id="x">hi</p></body></html>`)
	body := findByTag(t, a, root, TagBody)
	p := findByTag(t, a, body, TagP)
	v, ok := a.Attr(p, "id")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestParseHTML_AutoClosesParagraph(t *testing.T) {
	// A second <p> implicitly closes the first rather than nesting it,
	// matching HTML5's auto-close rule for paragraph-level elements.
	a, root := ParseHTML(`<body><p id="a">one<p id="b">two</p></body>`)
	body := findByTag(t, a, root, TagBody)
	require.Len(t, a.Children(body), 2)
	first, second := a.Children(body)[0], a.Children(body)[1]
	assert.Equal(t, TagP, a.Tag(first))
	assert.Equal(t, TagP, a.Tag(second))
	fv, _ := a.Attr(first, "id")
	sv, _ := a.Attr(second, "id")
	assert.Equal(t, "a", fv)
	assert.Equal(t, "b", sv)
}

func TestParseHTML_MismatchedEndTagIgnored(t *testing.T) {
	a, root := ParseHTML(`<body><span id="s">x</span></div></body>`)
	body := findByTag(t, a, root, TagBody)
	span := findByTag(t, a, body, TagSpan)
	v, _ := a.Attr(span, "id")
	assert.Equal(t, "s", v)
}

func TestDecodeEntities_Named(t *testing.T) {
	assert.Equal(t, `<a & b>`, DecodeEntities("&lt;a &amp; b&gt;"))
	assert.Equal(t, " ", DecodeEntities("&nbsp;"))
}

func TestDecodeEntities_Numeric(t *testing.T) {
	assert.Equal(t, "A", DecodeEntities("&#65;"))
	assert.Equal(t, "A", DecodeEntities("&#x41;"))
}

func TestDecodeEntities_UnknownLeftVerbatim(t *testing.T) {
	assert.Equal(t, "&notanentity;", DecodeEntities("&notanentity;"))
}

func TestArena_AttrOrDefault(t *testing.T) {
	a, root := ParseHTML(`<body><div id="d"></div></body>`)
	div := findByTag(t, a, root, TagDiv)
	assert.Equal(t, "d", a.AttrOr(div, "id", "fallback"))
	assert.Equal(t, "fallback", a.AttrOr(div, "class", "fallback"))
	_ = root
}
