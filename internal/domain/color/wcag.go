package color

import "math"

// Kind selects the WCAG threshold that applies to a color pair.
type Kind string

const (
	NormalText  Kind = "normal_text"
	LargeText   Kind = "large_text"
	UIComponent Kind = "ui_component"
)

// WCAG 2.1 contrast thresholds.
const (
	AANormalText   = 4.5
	AALargeText    = 3.0
	AAUIComponent  = 3.0
	AAANormalText  = 7.0
	AAALargeText   = 4.5
	AAAUIComponent = 3.0
)

// RelativeLuminance returns the WCAG 2.1 relative luminance of c in [0,1].
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(v uint8) float64 {
	s := float64(v) / 255
	if s <= 0.03928 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// ContrastRatio returns (L1+0.05)/(L2+0.05) with L1 the lighter luminance,
// so argument order does not matter. The result is in [1,21].
func ContrastRatio(fg, bg RGB) float64 {
	l1, l2 := RelativeLuminance(fg), RelativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// RequiredAA returns the AA threshold for kind.
func RequiredAA(kind Kind) float64 {
	if kind == NormalText {
		return AANormalText
	}
	return AALargeText
}

// RequiredAAA returns the AAA threshold for kind.
func RequiredAAA(kind Kind) float64 {
	switch kind {
	case NormalText:
		return AAANormalText
	case LargeText:
		return AAALargeText
	default:
		return AAAUIComponent
	}
}

// MeetsAA reports whether ratio satisfies WCAG AA for kind.
func MeetsAA(ratio float64, kind Kind) bool {
	return ratio >= RequiredAA(kind)
}

// MeetsAAA reports whether ratio satisfies WCAG AAA for kind.
// UI components have no stricter AAA rule than AA.
func MeetsAAA(ratio float64, kind Kind) bool {
	return ratio >= RequiredAAA(kind)
}

// IsLargeText applies the WCAG large-scale text definition: at least 24px,
// or at least 18.66px (14pt) when bold.
func IsLargeText(fontSizePx float64, fontWeight int) bool {
	return fontSizePx >= 24 || (fontSizePx >= 18.66 && fontWeight >= 700)
}

// Verdict rates one color pair against every WCAG threshold.
type Verdict struct {
	Foreground  RGB           `json:"foreground"`
	Background  RGB           `json:"background"`
	Ratio       float64       `json:"ratio"`
	AA          map[Kind]bool `json:"aa"`
	AAA         map[Kind]bool `json:"aaa"`
	Suggestions []Suggestion  `json:"suggestions,omitempty"`
}

// Assess rates fg on bg. Suggestions target AA normal text and are only
// computed when the pair fails it.
func Assess(fg, bg RGB) Verdict {
	ratio := ContrastRatio(fg, bg)
	v := Verdict{
		Foreground: fg,
		Background: bg,
		Ratio:      math.Round(ratio*100) / 100,
		AA:         map[Kind]bool{},
		AAA:        map[Kind]bool{},
	}
	for _, k := range []Kind{NormalText, LargeText, UIComponent} {
		v.AA[k] = MeetsAA(ratio, k)
		v.AAA[k] = MeetsAAA(ratio, k)
	}
	if !v.AA[NormalText] {
		v.Suggestions = SuggestAccessible(fg, bg, AANormalText)
	}
	return v
}
