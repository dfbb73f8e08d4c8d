package mediaquery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arturoeanton/gockore/container"
)

func screenFeatures(width, height int) container.MediaFeatures {
	return container.MediaFeatures{Type: "screen", Width: width, Height: height, Color: 8}
}

func TestMatches_TypeOnly(t *testing.T) {
	f := screenFeatures(1024, 768)
	assert.True(t, Matches("screen", f))
	assert.False(t, Matches("print", f))
	assert.True(t, Matches("all", f))
	assert.True(t, Matches("", f), "an empty condition always matches")
}

func TestMatches_MinMaxWidth(t *testing.T) {
	f := screenFeatures(800, 600)
	assert.True(t, Matches("(min-width: 600px)", f))
	assert.False(t, Matches("(min-width: 900px)", f))
	assert.True(t, Matches("(max-width: 800px)", f))
	assert.False(t, Matches("(max-width: 700px)", f))
}

func TestMatches_AndClause(t *testing.T) {
	f := screenFeatures(800, 600)
	assert.True(t, Matches("screen and (min-width: 600px) and (max-width: 1000px)", f))
	assert.False(t, Matches("screen and (min-width: 900px)", f))
}

func TestMatches_OrClause(t *testing.T) {
	f := screenFeatures(320, 480)
	assert.True(t, Matches("(min-width: 900px), (max-width: 400px)", f))
}

func TestMatches_Not(t *testing.T) {
	f := screenFeatures(800, 600)
	assert.False(t, Matches("not screen", f))
	assert.True(t, Matches("not print", f))
}

func TestMatches_Orientation(t *testing.T) {
	landscape := screenFeatures(1024, 768)
	portrait := screenFeatures(768, 1024)
	assert.True(t, Matches("(orientation: landscape)", landscape))
	assert.False(t, Matches("(orientation: portrait)", landscape))
	assert.True(t, Matches("(orientation: portrait)", portrait))
}

func TestMatches_BooleanFeature(t *testing.T) {
	color := screenFeatures(100, 100)
	mono := container.MediaFeatures{Type: "screen", Monochrome: 1}
	assert.True(t, Matches("(color)", color))
	assert.False(t, Matches("(color)", mono))
	assert.True(t, Matches("(monochrome)", mono))
}

func TestMatches_UnknownFeature(t *testing.T) {
	f := screenFeatures(800, 600)
	assert.False(t, Matches("(prefers-color-scheme: dark)", f), "unmodeled features never match")
}
