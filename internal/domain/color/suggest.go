package color

// Strategy names for accessible-color suggestions.
const (
	StrategyDarkenForeground  = "darken-foreground"
	StrategyLightenForeground = "lighten-foreground"
	StrategyDarkenBackground  = "darken-background"
	StrategyLightenBackground = "lighten-background"
)

// maxSuggestions caps the number of returned suggestions.
const maxSuggestions = 3

// Suggestion is a color pair that meets a target contrast ratio.
type Suggestion struct {
	Strategy   string  `json:"strategy"`
	Foreground RGB     `json:"foreground"`
	Background RGB     `json:"background"`
	Ratio      float64 `json:"ratio"`
}

// SuggestAccessible tries four strategies in order (darken fg, lighten fg,
// darken bg, lighten bg). Each steps 10%..90% of the remaining range and keeps
// the first step that reaches target. At most three suggestions are returned.
// A target <= 0 means 4.5.
func SuggestAccessible(fg, bg RGB, target float64) []Suggestion {
	if target <= 0 {
		target = AANormalText
	}

	strategies := []struct {
		name   string
		adjust func(step float64) (RGB, RGB)
	}{
		{StrategyDarkenForeground, func(p float64) (RGB, RGB) { return fg.Darken(p), bg }},
		{StrategyLightenForeground, func(p float64) (RGB, RGB) { return fg.Lighten(p), bg }},
		{StrategyDarkenBackground, func(p float64) (RGB, RGB) { return fg, bg.Darken(p) }},
		{StrategyLightenBackground, func(p float64) (RGB, RGB) { return fg, bg.Lighten(p) }},
	}

	var out []Suggestion
	for _, s := range strategies {
		for step := 1; step <= 9; step++ {
			f, b := s.adjust(float64(step) / 10)
			ratio := ContrastRatio(f, b)
			if ratio >= target {
				out = append(out, Suggestion{Strategy: s.name, Foreground: f, Background: b, Ratio: ratio})
				break
			}
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
