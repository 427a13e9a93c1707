package domain

// DesignTokens is a named set of canonical design values.
type DesignTokens struct {
	Colors     map[string]string `yaml:"colors"     json:"colors"`
	Typography map[string]string `yaml:"typography" json:"typography"`
	Spacing    map[string]string `yaml:"spacing"    json:"spacing"`
}

// DefaultDesignTokens returns the built-in fallback palette, type scale and
// spacing scale. A fresh copy is returned on every call.
func DefaultDesignTokens() *DesignTokens {
	return &DesignTokens{
		Colors: map[string]string{
			"primary":      "#3B82F6",
			"primary-dark": "#1D4ED8",
			"secondary":    "#64748B",
			"success":      "#22C55E",
			"warning":      "#F59E0B",
			"error":        "#EF4444",
			"background":   "#FFFFFF",
			"surface":      "#F8FAFC",
			"text":         "#0F172A",
			"text-muted":   "#475569",
			"border":       "#E2E8F0",
			"black":        "#000000",
		},
		Typography: map[string]string{
			"font-sans":     "Inter, system-ui, sans-serif",
			"font-mono":     "ui-monospace, SFMono-Regular, monospace",
			"text-xs":       "12px",
			"text-sm":       "14px",
			"text-base":     "16px",
			"text-lg":       "18px",
			"text-xl":       "20px",
			"text-2xl":      "24px",
			"font-normal":   "400",
			"font-medium":   "500",
			"font-semibold": "600",
			"font-bold":     "700",
		},
		Spacing: map[string]string{
			"0":  "0px",
			"1":  "4px",
			"2":  "8px",
			"3":  "12px",
			"4":  "16px",
			"5":  "20px",
			"6":  "24px",
			"8":  "32px",
			"10": "40px",
			"12": "48px",
		},
	}
}

// IsEmpty reports whether no token of any category is defined.
func (t *DesignTokens) IsEmpty() bool {
	return t == nil || (len(t.Colors) == 0 && len(t.Typography) == 0 && len(t.Spacing) == 0)
}
