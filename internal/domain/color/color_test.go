package color_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/uikraft/internal/domain/color"
)

func TestParse_HexForms(t *testing.T) {
	short, ok := color.Parse("#fff")
	require.True(t, ok)
	long, ok := color.Parse("#ffffff")
	require.True(t, ok)
	assert.Equal(t, long, short)
	assert.Equal(t, color.RGB{255, 255, 255}, short)

	withAlpha, ok := color.Parse("#3B82F680")
	require.True(t, ok)
	assert.Equal(t, color.RGB{0x3B, 0x82, 0xF6}, withAlpha)
}

func TestParse_RGBFunctions(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGB
	}{
		{"rgb(255, 0, 0)", color.RGB{255, 0, 0}},
		{"rgba(10, 20, 30, 0.5)", color.RGB{10, 20, 30}},
		{"rgb(10 20 30 / 50%)", color.RGB{10, 20, 30}},
		{"RGB(100%, 0%, 0%)", color.RGB{255, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := color.Parse(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Named(t *testing.T) {
	c, ok := color.Parse("White")
	require.True(t, ok)
	assert.Equal(t, "#FFFFFF", c.Hex())
}

func TestParse_Unparseable(t *testing.T) {
	for _, in := range []string{"", "transparent", "#12", "#zzzzzz", "rgb(1,2)", "hsl(0, 0%, 0%)", "rgba(0, 0, 0, 0)", "notacolor"} {
		_, ok := color.Parse(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestFirstColor_BoxShadow(t *testing.T) {
	c, ok := color.FirstColor("rgb(59, 130, 246) 0px 0px 0px 3px")
	require.True(t, ok)
	assert.Equal(t, color.RGB{59, 130, 246}, c)

	c, ok = color.FirstColor("0 0 0 2px #1d4ed8")
	require.True(t, ok)
	assert.Equal(t, "#1D4ED8", c.Hex())

	_, ok = color.FirstColor("none")
	assert.False(t, ok)
}

func TestLightenDarken(t *testing.T) {
	gray := color.RGB{100, 100, 100}
	assert.Equal(t, color.RGB{0, 0, 0}, gray.Darken(1))
	assert.Equal(t, color.RGB{255, 255, 255}, gray.Lighten(1))
	assert.Equal(t, color.RGB{50, 50, 50}, gray.Darken(0.5))
}

func TestContrastRatio_BlackWhite(t *testing.T) {
	white := color.MustParse("#FFFFFF")
	black := color.MustParse("#000000")
	assert.InDelta(t, 21.0, color.ContrastRatio(white, black), 1e-6)
}

func TestContrastRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"#767676", "#FFFFFF"},
		{"#3B82F6", "#0F172A"},
		{"rgb(12, 200, 99)", "#fafafa"},
	}
	for _, p := range pairs {
		a, b := color.MustParse(p[0]), color.MustParse(p[1])
		assert.Equal(t, color.ContrastRatio(a, b), color.ContrastRatio(b, a), "%s vs %s", p[0], p[1])
	}
}

func TestContrastRatio_Identity(t *testing.T) {
	for _, s := range []string{"#000", "#fff", "#3B82F6", "#767676"} {
		c := color.MustParse(s)
		assert.InDelta(t, 1.0, color.ContrastRatio(c, c), 1e-12)
	}
}

func TestContrastRatio_GrayOnWhiteBoundary(t *testing.T) {
	ratio := color.ContrastRatio(color.MustParse("#767676"), color.MustParse("#FFFFFF"))
	assert.InDelta(t, 4.54, ratio, 0.01)
	assert.True(t, color.MeetsAA(ratio, color.NormalText))
}

func TestMeetsAA(t *testing.T) {
	assert.True(t, color.MeetsAA(4.5, color.NormalText))
	assert.False(t, color.MeetsAA(4.499, color.NormalText))
	assert.True(t, color.MeetsAA(3.0, color.LargeText))
	assert.True(t, color.MeetsAA(3.0, color.UIComponent))
	assert.False(t, color.MeetsAA(2.99, color.UIComponent))
}

func TestMeetsAAA(t *testing.T) {
	assert.True(t, color.MeetsAAA(7.0, color.NormalText))
	assert.False(t, color.MeetsAAA(6.9, color.NormalText))
	assert.True(t, color.MeetsAAA(4.5, color.LargeText))
	assert.True(t, color.MeetsAAA(3.0, color.UIComponent))
}

func TestRelativeLuminance_Range(t *testing.T) {
	assert.Equal(t, 0.0, color.RelativeLuminance(color.RGB{}))
	assert.InDelta(t, 1.0, color.RelativeLuminance(color.RGB{255, 255, 255}), 1e-9)
}

func TestIsLargeText(t *testing.T) {
	assert.True(t, color.IsLargeText(24, 400))
	assert.True(t, color.IsLargeText(19, 700))
	assert.False(t, color.IsLargeText(19, 400))
	assert.False(t, color.IsLargeText(16, 700))
}

func TestDeltaE(t *testing.T) {
	c := color.MustParse("#3B82F6")
	assert.Equal(t, 0.0, color.DeltaE(c, c))
	assert.InDelta(t, 100.0, color.DeltaE(color.RGB{}, color.RGB{255, 255, 255}), 1e-9)

	near := color.MustParse("#3C82F6")
	d := color.DeltaE(c, near)
	assert.Greater(t, d, 0.0)
	assert.LessOrEqual(t, d, color.ToleranceDeltaE)

	far := color.MustParse("#EF4444")
	assert.Greater(t, color.DeltaE(c, far), color.ToleranceDeltaE)
	assert.Equal(t, color.DeltaE(c, far), color.DeltaE(far, c))
}

func TestSuggestAccessible(t *testing.T) {
	fg := color.MustParse("#999999")
	bg := color.MustParse("#FFFFFF")

	suggestions := color.SuggestAccessible(fg, bg, 4.5)
	require.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 3)
	assert.Equal(t, color.StrategyDarkenForeground, suggestions[0].Strategy)
	for _, s := range suggestions {
		assert.GreaterOrEqual(t, s.Ratio, 4.5)
		assert.InDelta(t, color.ContrastRatio(s.Foreground, s.Background), s.Ratio, 1e-12)
	}
}

func TestSuggestAccessible_DefaultTarget(t *testing.T) {
	suggestions := color.SuggestAccessible(color.MustParse("#AAAAAA"), color.MustParse("#FFFFFF"), 0)
	require.NotEmpty(t, suggestions)
	for _, s := range suggestions {
		assert.GreaterOrEqual(t, s.Ratio, color.AANormalText)
	}
}

func TestRGB_TextEncoding(t *testing.T) {
	data, err := json.Marshal(map[string]color.RGB{"fg": color.MustParse("rgb(59, 130, 246)")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fg": "#3B82F6"}`, string(data))

	var back map[string]color.RGB
	require.NoError(t, json.Unmarshal([]byte(`{"fg": "#fff"}`), &back))
	assert.Equal(t, color.RGB{R: 255, G: 255, B: 255}, back["fg"])

	assert.Error(t, json.Unmarshal([]byte(`{"fg": "transparent"}`), &back))
}

func TestAssess(t *testing.T) {
	v := color.Assess(color.MustParse("#767676"), color.MustParse("#ffffff"))
	assert.InDelta(t, 4.54, v.Ratio, 0.01)
	assert.True(t, v.AA[color.NormalText])
	assert.False(t, v.AAA[color.NormalText])
	assert.True(t, v.AAA[color.LargeText])
	assert.Empty(t, v.Suggestions)

	weak := color.Assess(color.MustParse("#aaaaaa"), color.MustParse("#ffffff"))
	assert.False(t, weak.AA[color.NormalText])
	assert.False(t, weak.AA[color.UIComponent])
	require.NotEmpty(t, weak.Suggestions)
	assert.GreaterOrEqual(t, weak.Suggestions[0].Ratio, color.AANormalText)
}
