// Package tokens checks style declarations against a design-token set and
// scores adherence per category.
package tokens

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/color"
)

var colorProperties = map[string]bool{
	"color":            true,
	"background-color": true,
	"border-color":     true,
}

var spacingProperties = map[string]bool{
	"padding": true, "padding-top": true, "padding-right": true, "padding-bottom": true, "padding-left": true,
	"margin": true, "margin-top": true, "margin-right": true, "margin-bottom": true, "margin-left": true,
	"gap": true, "row-gap": true, "column-gap": true,
}

// CategoryScore is the adherence score of one token category.
type CategoryScore struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Checks     int     `json:"checks"`
	Violations int     `json:"violations"`
}

// Report is the Details payload of a token adherence result.
type Report struct {
	Score              float64                 `json:"score"`
	Categories         []CategoryScore         `json:"categories"`
	Checks             int                     `json:"checks"`
	Violations         []domain.TokenViolation `json:"violations"`
	ApproximateMatches []domain.TokenViolation `json:"approximate_matches,omitempty"`
	Skipped            []string                `json:"skipped,omitempty"`
	StyleSource        string                  `json:"style_source"`
	TokenSource        string                  `json:"token_source"`
}

// Category returns the named category score.
func (r *Report) Category(name string) CategoryScore {
	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}
	return CategoryScore{Name: name, Score: 100}
}

// Validator scores style declarations against design tokens.
type Validator struct {
	tokens     *domain.DesignTokens
	thresholds domain.ThresholdConfig
	palette    []namedColor
}

type namedColor struct {
	name  string
	value string
	rgb   color.RGB
}

// NewValidator falls back to domain.DefaultDesignTokens when tokens is nil
// and to 90% thresholds when unset.
func NewValidator(tokens *domain.DesignTokens, thresholds domain.ThresholdConfig) *Validator {
	if tokens == nil {
		tokens = domain.DefaultDesignTokens()
	}
	if thresholds.TokenOverall == 0 {
		thresholds.TokenOverall = domain.DefaultTokenThreshold
	}
	if thresholds.TokenCategory == 0 {
		thresholds.TokenCategory = domain.DefaultTokenThreshold
	}
	v := &Validator{tokens: tokens, thresholds: thresholds}
	for _, name := range sortedKeys(tokens.Colors) {
		value := tokens.Colors[name]
		if rgb, ok := color.Parse(value); ok {
			v.palette = append(v.palette, namedColor{name: name, value: value, rgb: rgb})
		}
	}
	return v
}

type tally struct{ checks, violations int }

// Validate checks every declaration and returns a ValidationResult with a
// *Report as Details. Overall score below threshold is an error; any
// category below threshold is a warning.
func (v *Validator) Validate(decls []domain.StyleDeclaration) *domain.ValidationResult {
	report := &Report{Violations: []domain.TokenViolation{}}
	counts := map[string]*tally{
		domain.TokenCategoryColor:      {},
		domain.TokenCategoryTypography: {},
		domain.TokenCategorySpacing:    {},
	}

	for _, d := range decls {
		prop := NormalizeProperty(d.Property)
		value := NormalizeValue(prop, d.Value)

		var (
			category  string
			violation *domain.TokenViolation
			checked   bool
		)
		switch {
		case colorProperties[prop]:
			category = domain.TokenCategoryColor
			violation, checked = v.checkColor(prop, value, report)
		case prop == "font-family" || prop == "font-size" || prop == "font-weight":
			category = domain.TokenCategoryTypography
			violation, checked = v.checkTypography(prop, value)
		case spacingProperties[prop]:
			category = domain.TokenCategorySpacing
			violation, checked = v.checkSpacing(prop, value)
		default:
			continue
		}

		if !checked {
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s: %s", prop, value))
			continue
		}
		counts[category].checks++
		if violation != nil {
			counts[category].violations++
			report.Violations = append(report.Violations, *violation)
		}
	}

	var totalChecks, totalViolations int
	for _, name := range []string{domain.TokenCategoryColor, domain.TokenCategoryTypography, domain.TokenCategorySpacing} {
		c := counts[name]
		totalChecks += c.checks
		totalViolations += c.violations
		report.Categories = append(report.Categories, CategoryScore{
			Name:       name,
			Score:      percent(c.checks, c.violations),
			Checks:     c.checks,
			Violations: c.violations,
		})
	}
	report.Checks = totalChecks
	report.Score = percent(totalChecks, totalViolations)

	var errs, warnings []string
	if report.Score < v.thresholds.TokenOverall {
		errs = append(errs, fmt.Sprintf("design token adherence %.1f%% is below %.0f%% (%d of %d checks failed)",
			report.Score, v.thresholds.TokenOverall, totalViolations, totalChecks))
	}
	for _, c := range report.Categories {
		if c.Score < v.thresholds.TokenCategory {
			warnings = append(warnings, fmt.Sprintf("%s token adherence %.1f%% is below %.0f%% (%d violations)",
				c.Name, c.Score, v.thresholds.TokenCategory, c.Violations))
		}
	}

	return domain.NewValidationResult(domain.ValidatorTokens, errs, warnings, report)
}

func percent(checks, violations int) float64 {
	if checks == 0 {
		return 100
	}
	return float64(checks-violations) / float64(checks) * 100
}

func (v *Validator) checkColor(prop, value string, report *Report) (*domain.TokenViolation, bool) {
	actual, ok := color.Parse(value)
	if !ok || len(v.palette) == 0 {
		return nil, false
	}

	nearest, best := v.nearestColor(actual)
	switch {
	case best <= color.ExactDeltaE:
		return nil, true
	case best <= color.ToleranceDeltaE:
		d := round2(best)
		report.ApproximateMatches = append(report.ApproximateMatches, domain.TokenViolation{
			Category:        domain.TokenCategoryColor,
			Property:        prop,
			Expected:        fmt.Sprintf("%s (%s)", nearest.name, nearest.value),
			Actual:          value,
			DeltaE:          &d,
			WithinTolerance: true,
		})
		return nil, true
	}

	d := round2(best)
	return &domain.TokenViolation{
		Category: domain.TokenCategoryColor,
		Property: prop,
		Expected: fmt.Sprintf("%s (%s)", nearest.name, nearest.value),
		Actual:   value,
		DeltaE:   &d,
	}, true
}

func (v *Validator) nearestColor(c color.RGB) (namedColor, float64) {
	best := math.Inf(1)
	var nearest namedColor
	for _, p := range v.palette {
		if d := color.DeltaE(c, p.rgb); d < best {
			best, nearest = d, p
		}
	}
	return nearest, best
}

func (v *Validator) checkTypography(prop, value string) (*domain.TokenViolation, bool) {
	if len(v.tokens.Typography) == 0 || value == "" {
		return nil, false
	}
	names := sortedKeys(v.tokens.Typography)

	if prop == "font-family" {
		var stacks []string
		for _, name := range names {
			tv := v.tokens.Typography[name]
			if !strings.Contains(tv, ",") {
				continue
			}
			if tv == value {
				return nil, true
			}
			stacks = append(stacks, fmt.Sprintf("%s (%s)", name, tv))
		}
		return &domain.TokenViolation{
			Category: domain.TokenCategoryTypography,
			Property: prop,
			Expected: strings.Join(stacks, " | "),
			Actual:   value,
		}, true
	}

	for _, name := range names {
		if v.tokens.Typography[name] == value {
			return nil, true
		}
	}
	return &domain.TokenViolation{
		Category: domain.TokenCategoryTypography,
		Property: prop,
		Expected: nearestLiteral(v.tokens.Typography, value, prop),
		Actual:   value,
	}, true
}

func (v *Validator) checkSpacing(prop, value string) (*domain.TokenViolation, bool) {
	if len(v.tokens.Spacing) == 0 || value == "" {
		return nil, false
	}
	for _, tv := range v.tokens.Spacing {
		if tv == value {
			return nil, true
		}
	}
	return &domain.TokenViolation{
		Category: domain.TokenCategorySpacing,
		Property: prop,
		Expected: nearestLiteral(v.tokens.Spacing, value, prop),
		Actual:   value,
	}, true
}

// nearestLiteral names the numerically closest token as a hint. Only tokens
// of the same unit are considered; it falls back to listing every value.
func nearestLiteral(tokens map[string]string, value, prop string) string {
	target, unit, ok := splitNumber(value)
	names := sortedKeys(tokens)
	if ok {
		best := math.Inf(1)
		var hint string
		for _, name := range names {
			n, u, ok := splitNumber(tokens[name])
			if !ok || u != unit {
				continue
			}
			// font-size tokens should not be suggested for font-weight and back
			if prop == "font-weight" && u != "" || prop == "font-size" && u == "" {
				continue
			}
			if d := math.Abs(n - target); d < best {
				best, hint = d, fmt.Sprintf("%s (%s)", name, tokens[name])
			}
		}
		if hint != "" {
			return hint
		}
	}
	values := make([]string, 0, len(names))
	for _, name := range names {
		values = append(values, tokens[name])
	}
	return "one of: " + strings.Join(values, ", ")
}

func splitNumber(s string) (float64, string, bool) {
	i := 0
	for i < len(s) && (s[i] == '-' || s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return n, s[i:], true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
