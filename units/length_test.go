package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Px(t *testing.T) {
	l, ok := Parse("16px")
	require.True(t, ok)
	assert.Equal(t, UnitPx, l.Unit)
	assert.Equal(t, 16.0, l.Value)
}

func TestParse_Percent(t *testing.T) {
	l, ok := Parse("10%")
	require.True(t, ok)
	assert.True(t, l.IsPercent())
	assert.Equal(t, 10.0, l.Value)
}

func TestParse_Auto(t *testing.T) {
	l, ok := Parse("auto")
	require.True(t, ok)
	assert.True(t, l.IsAuto())
	assert.False(t, l.IsDefinite())
}

func TestParse_None(t *testing.T) {
	l, ok := Parse("none")
	require.True(t, ok)
	assert.True(t, l.IsNone())
	assert.False(t, l.IsDefinite())
}

func TestParse_EmptyFails(t *testing.T) {
	_, ok := Parse("")
	assert.False(t, ok)
}

func TestResolveAgainstWidth_Percent(t *testing.T) {
	l, ok := Parse("10%")
	require.True(t, ok)
	ctx := Context{ParentWidthPx: 200}
	assert.Equal(t, 20.0, l.ResolveAgainstWidth(ctx))
}

func TestResolveAgainstWidth_Em(t *testing.T) {
	l, ok := Parse("2em")
	require.True(t, ok)
	ctx := Context{FontSizePx: 10}
	assert.Equal(t, 20.0, l.ResolveAgainstWidth(ctx))
}

func TestResolveAgainstHeight_PercentUsesParentHeight(t *testing.T) {
	l, ok := Parse("50%")
	require.True(t, ok)
	ctx := Context{ParentWidthPx: 100, ParentHeightPx: 400}
	assert.Equal(t, 200.0, l.ResolveAgainstHeight(ctx))
}

func TestResolve_Px_IgnoresPercentReferent(t *testing.T) {
	l, ok := Parse("5px")
	require.True(t, ok)
	ctx := Context{ParentWidthPx: 1000}
	assert.Equal(t, 5.0, l.ResolveAgainstWidth(ctx))
}

func TestParse_Rem(t *testing.T) {
	l, ok := Parse("1.5rem")
	require.True(t, ok)
	ctx := Context{RootFontSizePx: 16}
	assert.Equal(t, 24.0, l.ResolveAgainstWidth(ctx))
}

func TestParse_BareZeroIsPx(t *testing.T) {
	l, ok := Parse("0")
	require.True(t, ok)
	assert.Equal(t, UnitPx, l.Unit)
	assert.Equal(t, 0.0, l.Value)
}
