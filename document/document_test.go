package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/gockore/container"
)

const basicHTML = `<html><body>
<div class="a">hello world</div>
<div class="b">second block</div>
</body></html>`

func TestCreateFromString_RendersNonZeroSize(t *testing.T) {
	c := container.NewTestContainer(640, 480)
	doc := CreateFromString(basicHTML, c, nil, "about:test")
	doc.Render(640, RenderAll)

	assert.Equal(t, 640, doc.Width())
	assert.Greater(t, doc.Height(), 0)
	assert.NotEqual(t, doc.ID.String(), "")
}

func TestDraw_BalancesClipStack(t *testing.T) {
	c := container.NewTestContainer(640, 480)
	doc := CreateFromString(basicHTML, c, nil, "about:test")
	doc.Render(640, RenderAll)
	doc.Draw(container.Rect{X: 0, Y: 0, W: 640, H: doc.Height()}, 0, 0)
	assert.True(t, c.ClipBalanced())
}

func TestOnMouseOver_ThenLeave_TogglesSameElements(t *testing.T) {
	c := container.NewTestContainer(640, 480)
	doc := CreateFromString(basicHTML, c, nil, "about:test")
	doc.Render(640, RenderAll)

	over := doc.OnMouseOver(0, 0)
	require.NotEmpty(t, over, "the top-left corner is inside the html/body boxes")

	leave := doc.OnMouseLeave()
	assert.Len(t, leave, len(over), "leaving clears exactly the elements that were hovered")
}

func TestOnLButtonDown_ThenUp_ClearsActive(t *testing.T) {
	c := container.NewTestContainer(640, 480)
	doc := CreateFromString(basicHTML, c, nil, "about:test")
	doc.Render(640, RenderAll)

	down := doc.OnLButtonDown(0, 0)
	require.NotEmpty(t, down)

	up := doc.OnLButtonUp()
	assert.Len(t, up, len(down))
}

func TestCreateFromString_FailedLinkImportIsNonFatal(t *testing.T) {
	html := `<html><head><link rel="stylesheet" href="missing.css"></head><body><p>text</p></body></html>`
	c := container.NewTestContainer(320, 240)

	assert.NotPanics(t, func() {
		doc := CreateFromString(html, c, nil, "about:test")
		doc.Render(320, RenderAll)
		assert.Equal(t, 320, doc.Width())
	})
}

func TestNewContext_WithDefaultFont_OverridesUAStylesheet(t *testing.T) {
	plain := NewContext("")
	custom := NewContext("", WithDefaultFont("Georgia, serif", 20))

	assert.NotEqual(t, plain.Options.DefaultFontFamily, custom.Options.DefaultFontFamily)
	assert.Equal(t, float64(20), custom.Options.DefaultFontSizePx)

	c := container.NewTestContainer(320, 240)
	doc := CreateFromString(`<html><body><p>hi</p></body></html>`, c, custom, "about:test")
	doc.Render(320, RenderAll)
	assert.Greater(t, doc.Height(), 0)
}

func TestMouseEvents_BeforeRender_ReturnNil(t *testing.T) {
	c := container.NewTestContainer(320, 240)
	doc := CreateFromString(basicHTML, c, nil, "about:test")

	assert.Nil(t, doc.OnMouseOver(0, 0))
	assert.Nil(t, doc.OnLButtonDown(0, 0))
	assert.Nil(t, doc.OnLButtonUp())
	assert.Nil(t, doc.OnMouseLeave())
}
