package cssom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleRule(t *testing.T) {
	sheet := Parse(`p { color: red; font-size: 12px; }`, OriginAuthor)
	require.Len(t, sheet.Rules, 1)
	r := sheet.Rules[0]
	assert.Equal(t, "p", r.SelectorText)
	require.Len(t, r.Declarations, 2)
	assert.Equal(t, Declaration{Property: "color", Value: "red"}, r.Declarations[0])
	assert.Equal(t, Declaration{Property: "font-size", Value: "12px"}, r.Declarations[1])
}

func TestParse_Important(t *testing.T) {
	sheet := Parse(`p { color: red !important; }`, OriginAuthor)
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Declarations, 1)
	assert.True(t, sheet.Rules[0].Declarations[0].Important)
}

func TestParse_CommentsStripped(t *testing.T) {
	sheet := Parse(`/* comment */ p { color: /* inline */ red; }`, OriginAuthor)
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Declarations, 1)
	assert.Equal(t, "red", sheet.Rules[0].Declarations[0].Value)
}

func TestParse_DocumentOrderAcrossRules(t *testing.T) {
	sheet := Parse(`a { color: red; } b { color: blue; }`, OriginAuthor)
	require.Len(t, sheet.Rules, 2)
	assert.Less(t, sheet.Rules[0].Order, sheet.Rules[1].Order)
}

func TestParse_MediaRuleNested(t *testing.T) {
	sheet := Parse(`@media (min-width: 600px) { p { color: red; } }`, OriginAuthor)
	require.Empty(t, sheet.Rules)
	require.Len(t, sheet.MediaRules, 1)
	mr := sheet.MediaRules[0]
	assert.Contains(t, mr.Condition, "min-width")
	require.Len(t, mr.Rules, 1)
	assert.Equal(t, "p", mr.Rules[0].SelectorText)
}

func TestParse_UnknownAtRuleDiscarded(t *testing.T) {
	sheet := Parse(`@keyframes spin { from { color: red; } to { color: blue; } } p { color: green; }`, OriginAuthor)
	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, "p", sheet.Rules[0].SelectorText)
}

func TestParse_OriginRecorded(t *testing.T) {
	sheet := Parse(`p { color: red; }`, OriginUserAgent)
	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, OriginUserAgent, sheet.Rules[0].Origin)
}
