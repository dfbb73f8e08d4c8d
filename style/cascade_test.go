package style

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arturoeanton/gockore/colors"
)

func TestCascade_SpecificityBeatsDocumentOrder(t *testing.T) {
	// #x has one ID; later same-origin rule by tag alone must still lose.
	css := `#x { color: red; } p { color: blue; }`
	c := computedFor(t, `<p id="x">hi</p>`, css, "x")
	assert.Equal(t, colors.Color{R: 255, A: 255}, c.Color)
}

func TestCascade_DocumentOrderTiesWithinEqualSpecificity(t *testing.T) {
	// Same specificity (one class each): later rule in source order wins.
	css := `.a { color: red; } .b { color: blue; }`
	c := computedFor(t, `<p id="x" class="a b">hi</p>`, css, "x")
	assert.Equal(t, colors.Color{B: 255, A: 255}, c.Color)
}

func TestCascade_ImportantBeatsHigherSpecificity(t *testing.T) {
	css := `#x { color: red; } p { color: blue !important; }`
	c := computedFor(t, `<p id="x">hi</p>`, css, "x")
	assert.Equal(t, colors.Color{B: 255, A: 255}, c.Color)
}

func TestCascade_InlineStyleBeatsAuthorSheet(t *testing.T) {
	css := `#x { color: red; }`
	c := computedFor(t, `<p id="x" style="color: blue">hi</p>`, css, "x")
	assert.Equal(t, colors.Color{B: 255, A: 255}, c.Color)
}

func TestCascade_InheritedPropertyPropagates(t *testing.T) {
	css := `#parent { color: red; }`
	c := computedFor(t, `<div id="parent"><span id="x">hi</span></div>`, css, "x")
	assert.Equal(t, colors.Color{R: 255, A: 255}, c.Color)
}

func TestCascade_NonInheritedPropertyResetsOnChild(t *testing.T) {
	css := `#parent { background-color: red; }`
	c := computedFor(t, `<div id="parent"><span id="x">hi</span></div>`, css, "x")
	assert.Equal(t, colors.Transparent, c.BackgroundColor)
}

func TestCascade_NthChildSelectorInStylesheet(t *testing.T) {
	css := `li:nth-child(2) { color: red; }`
	c := computedFor(t, `<ul><li>a</li><li id="x">b</li><li>c</li></ul>`, css, "x")
	assert.Equal(t, colors.Color{R: 255, A: 255}, c.Color)
}

func TestCascade_NthChildSelectorSkipsNonMatching(t *testing.T) {
	css := `li:nth-child(2) { color: red; }`
	c := computedFor(t, `<ul><li id="x">a</li><li>b</li></ul>`, css, "x")
	assert.Equal(t, colors.Black, c.Color)
}

func TestCascade_FloatAndClearParse(t *testing.T) {
	css := `#x { float: left; } #y { clear: both; }`
	left := computedFor(t, `<div id="x"></div>`, css, "x")
	assert.Equal(t, FloatLeft, left.Float)

	cleared := computedFor(t, `<div id="y"></div>`, css, "y")
	assert.Equal(t, ClearBoth, cleared.Clear)
}
