package focus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/focus"
)

func chromeDefaults() domain.FocusStyle {
	return domain.FocusStyle{
		OutlineWidth:     "0px",
		OutlineStyle:     "none",
		OutlineColor:     "rgb(0, 0, 0)",
		BoxShadow:        "none",
		BorderWidth:      "0px",
		BorderColor:      "rgb(0, 0, 0)",
		BackgroundColor:  "rgba(0, 0, 0, 0)",
		Color:            "rgb(0, 0, 0)",
		ParentBackground: "rgb(255, 255, 255)",
	}
}

func TestCheck_NoIndicatorIsCritical(t *testing.T) {
	issues := focus.Check("button#save", chromeDefaults())
	require.Len(t, issues, 1)
	assert.Equal(t, focus.IssueMissingIndicator, issues[0].Type)
	assert.Equal(t, domain.SeverityCritical, issues[0].Severity)
	require.NotNil(t, issues[0].Styles)
	assert.Equal(t, "none", issues[0].Styles.OutlineStyle)
}

func TestCheck_OutlineStyleNoneIsNotAnIndicator(t *testing.T) {
	s := chromeDefaults()
	s.OutlineWidth = "2px"
	assert.False(t, focus.HasIndicator(s))
}

func TestCheck_VisibleHighContrastOutlinePasses(t *testing.T) {
	s := chromeDefaults()
	s.OutlineWidth, s.OutlineStyle, s.OutlineColor = "2px", "solid", "rgb(29, 78, 216)"
	assert.Empty(t, focus.Check("a", s))
}

func TestCheck_LowContrastOutlineIsSerious(t *testing.T) {
	s := chromeDefaults()
	s.OutlineWidth, s.OutlineStyle, s.OutlineColor = "2px", "solid", "rgb(226, 232, 240)"
	issues := focus.Check("input", s)
	require.Len(t, issues, 1)
	assert.Equal(t, focus.IssueLowContrast, issues[0].Type)
	assert.Equal(t, domain.SeveritySerious, issues[0].Severity)
	assert.Equal(t, "3.0:1", issues[0].Expected)
	assert.Contains(t, issues[0].Message, "outline")
}

func TestIndicatorColor_FallsBackToBoxShadow(t *testing.T) {
	s := chromeDefaults()
	s.BoxShadow = "rgb(59, 130, 246) 0px 0px 0px 3px"
	c, source, ok := focus.IndicatorColor(s)
	require.True(t, ok)
	assert.Equal(t, "box-shadow", source)
	assert.Equal(t, "#3B82F6", c.Hex())
}

func TestIndicatorColor_FallsBackToBorder(t *testing.T) {
	s := chromeDefaults()
	s.BorderWidth, s.BorderColor = "1px", "rgb(15, 23, 42)"
	_, source, ok := focus.IndicatorColor(s)
	require.True(t, ok)
	assert.Equal(t, "border", source)
}

func TestBackground_UsesParentWhenTransparent(t *testing.T) {
	s := chromeDefaults()
	s.ParentBackground = "rgb(15, 23, 42)"
	assert.Equal(t, "#0F172A", focus.Background(s).Hex())

	s.BackgroundColor = "rgb(255, 0, 0)"
	assert.Equal(t, "#FF0000", focus.Background(s).Hex())
}
