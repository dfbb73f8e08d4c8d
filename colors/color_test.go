package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HexShorthand(t *testing.T) {
	c, ok := Parse("#f0f", nil)
	require.True(t, ok)
	assert.Equal(t, Color{R: 255, G: 0, B: 255, A: 255}, c)
}

func TestParse_HexFull(t *testing.T) {
	c, ok := Parse("#336699", nil)
	require.True(t, ok)
	assert.Equal(t, Color{R: 0x33, G: 0x66, B: 0x99, A: 255}, c)
}

func TestParse_HexInvalidDigit(t *testing.T) {
	_, ok := Parse("#zzz", nil)
	assert.False(t, ok)
}

func TestParse_RGBClampsOutOfRangeChannels(t *testing.T) {
	c, ok := Parse("rgb(256, -1, 128)", nil)
	require.True(t, ok)
	assert.Equal(t, Color{R: 255, G: 0, B: 128, A: 255}, c)
}

func TestParse_RGBA(t *testing.T) {
	c, ok := Parse("rgba(10, 20, 30, 0.5)", nil)
	require.True(t, ok)
	assert.Equal(t, uint8(10), c.R)
	assert.Equal(t, uint8(20), c.G)
	assert.Equal(t, uint8(30), c.B)
	assert.InDelta(t, 128, int(c.A), 1)
}

func TestParse_NamedColor(t *testing.T) {
	c, ok := Parse("Red", nil)
	require.True(t, ok)
	assert.Equal(t, Color{R: 255, A: 255}, c)
}

func TestParse_UnknownNameFails(t *testing.T) {
	_, ok := Parse("notacolor", nil)
	assert.False(t, ok)
}

func TestParse_SystemColorResolver(t *testing.T) {
	resolver := func(name string) (string, bool) {
		if name == "canvastext" {
			return "#000000", true
		}
		return "", false
	}
	c, ok := Parse("CanvasText", resolver)
	require.True(t, ok)
	assert.Equal(t, Color{A: 255}, c)
}
