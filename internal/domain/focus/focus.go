// Package focus judges whether a focused element's computed style shows a
// visible indicator with enough contrast.
package focus

import (
	"fmt"
	"strings"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/color"
)

// Issue types.
const (
	IssueMissingIndicator = "missing_focus_indicator"
	IssueLowContrast      = "low_focus_contrast"
)

// RequiredRatio is the minimum indicator contrast (WCAG 2.4.11 / 1.4.11).
const RequiredRatio = color.AAUIComponent

// HasIndicator reports whether the style draws any focus indicator.
func HasIndicator(s domain.FocusStyle) bool {
	outline := !isZero(s.OutlineWidth) && !isNone(s.OutlineStyle)
	shadow := !isNone(s.BoxShadow)
	border := !isZero(s.BorderWidth)
	return outline || shadow || border
}

// IndicatorColor picks the indicator color: outline color, else the first
// color in box-shadow, else border color.
func IndicatorColor(s domain.FocusStyle) (color.RGB, string, bool) {
	if !isZero(s.OutlineWidth) && !isNone(s.OutlineStyle) {
		if c, ok := color.Parse(s.OutlineColor); ok {
			return c, "outline", true
		}
	}
	if !isNone(s.BoxShadow) {
		if c, ok := color.FirstColor(s.BoxShadow); ok {
			return c, "box-shadow", true
		}
	}
	if !isZero(s.BorderWidth) {
		if c, ok := color.Parse(s.BorderColor); ok {
			return c, "border", true
		}
	}
	return color.RGB{}, "", false
}

// Background is the color the indicator is drawn against: the element's own
// background, the parent's when that is transparent, else white.
func Background(s domain.FocusStyle) color.RGB {
	if c, ok := color.Parse(s.BackgroundColor); ok {
		return c
	}
	if c, ok := color.Parse(s.ParentBackground); ok {
		return c
	}
	return color.RGB{R: 255, G: 255, B: 255}
}

// Check returns the issues for one focused element, nil when it passes.
// An unparseable indicator color skips the contrast check.
func Check(element string, s domain.FocusStyle) []domain.FocusIssue {
	style := s
	if !HasIndicator(s) {
		return []domain.FocusIssue{{
			Type:     IssueMissingIndicator,
			Message:  fmt.Sprintf("%s has no visible focus indicator (outline, box-shadow or border)", element),
			Severity: domain.SeverityCritical,
			Element:  element,
			Expected: "visible outline, box-shadow or border on focus",
			Actual:   "none",
			Styles:   &style,
		}}
	}

	fg, source, ok := IndicatorColor(s)
	if !ok {
		return nil
	}
	ratio := color.ContrastRatio(fg, Background(s))
	if ratio >= RequiredRatio {
		return nil
	}
	return []domain.FocusIssue{{
		Type:     IssueLowContrast,
		Message:  fmt.Sprintf("%s focus %s contrast is %.2f:1, needs %.1f:1", element, source, ratio, RequiredRatio),
		Severity: domain.SeveritySerious,
		Element:  element,
		Expected: fmt.Sprintf("%.1f:1", RequiredRatio),
		Actual:   fmt.Sprintf("%.2f:1", ratio),
		Styles:   &style,
	}}
}

func isZero(width string) bool {
	w := strings.TrimSpace(width)
	return w == "" || w == "0" || w == "0px"
}

func isNone(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "none"
}
