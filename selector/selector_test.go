package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/gockore/dom"
)

func TestNthMatches_OddEven(t *testing.T) {
	// :nth-child(2n+1) / "odd"
	for idx := 1; idx <= 6; idx++ {
		want := idx%2 == 1
		assert.Equal(t, want, nthMatches(idx, 2, 1), "idx=%d", idx)
	}
	// :nth-child(2n) / "even"
	for idx := 1; idx <= 6; idx++ {
		want := idx%2 == 0
		assert.Equal(t, want, nthMatches(idx, 2, 0), "idx=%d", idx)
	}
}

func TestNthMatches_PlainNumber(t *testing.T) {
	// :nth-child(3) — a=0, b=3 — matches only the third child.
	assert.False(t, nthMatches(1, 0, 3))
	assert.False(t, nthMatches(2, 0, 3))
	assert.True(t, nthMatches(3, 0, 3))
	assert.False(t, nthMatches(4, 0, 3))
}

func TestNthMatches_NegativeAIsBounded(t *testing.T) {
	// :nth-child(-n+3) matches only the first three children.
	assert.True(t, nthMatches(1, -1, 3))
	assert.True(t, nthMatches(2, -1, 3))
	assert.True(t, nthMatches(3, -1, 3))
	assert.False(t, nthMatches(4, -1, 3))
}

func TestParseNth_FormsParse(t *testing.T) {
	a, b := parseNth("2n+1")
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)

	a, b = parseNth("odd")
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)

	a, b = parseNth("even")
	assert.Equal(t, 2, a)
	assert.Equal(t, 0, b)

	a, b = parseNth("3")
	assert.Equal(t, 0, a)
	assert.Equal(t, 3, b)
}

func TestMatches_NthChildAgainstRealTree(t *testing.T) {
	arena, root := dom.ParseHTML(`<ul><li>a</li><li>b</li><li>c</li></ul>`)
	ul := findTag(t, arena, root, dom.TagUL)
	lis := arena.Children(ul)
	require.Len(t, lis, 3)

	sel := Parse("li:nth-child(2)")
	assert.False(t, Matches(sel, arena, lis[0], NopState{}))
	assert.True(t, Matches(sel, arena, lis[1], NopState{}))
	assert.False(t, Matches(sel, arena, lis[2], NopState{}))
}

func TestSpecificity_Compare_IDBeatsClassBeatsType(t *testing.T) {
	id := calcSpecificity([]Compound{{Simples: []Simple{{Kind: SimpleID, Value: "x"}}}})
	class := calcSpecificity([]Compound{{Simples: []Simple{{Kind: SimpleClass, Value: "x"}}}})
	typ := calcSpecificity([]Compound{{Simples: []Simple{{Kind: SimpleTag, Value: "p"}}}})

	assert.Equal(t, 1, id.Compare(class))
	assert.Equal(t, 1, class.Compare(typ))
	assert.Equal(t, -1, typ.Compare(id))
}

func TestSpecificity_Compare_Equal(t *testing.T) {
	a := calcSpecificity([]Compound{{Simples: []Simple{{Kind: SimpleTag, Value: "p"}}}})
	b := calcSpecificity([]Compound{{Simples: []Simple{{Kind: SimpleTag, Value: "div"}}}})
	assert.Equal(t, 0, a.Compare(b))
}

func TestParseList_SplitsOnTopLevelComma(t *testing.T) {
	sels := ParseList("p, div.x, a:hover")
	require.Len(t, sels, 3)
}

func findTag(t *testing.T, a *dom.Arena, root dom.NodeRef, tag dom.TagID) dom.NodeRef {
	t.Helper()
	var found dom.NodeRef = dom.NilRef
	a.Walk(root, func(ref dom.NodeRef) bool {
		if a.Type(ref) == dom.NodeElement && a.Tag(ref) == tag {
			found = ref
			return false
		}
		return true
	})
	require.NotEqual(t, dom.NilRef, found)
	return found
}
