package fix

import (
	"fmt"

	"github.com/openkraft/uikraft/internal/domain"
)

var keyboardSuggestions = map[string]string{
	"no_focusable_elements": "render a native <button>, <a href> or <input>, or add tabIndex={0} to the interactive element",
	"keyboard_trap":         "make sure Tab moves focus past the last element; only modal dialogs may contain focus, and they must close on Escape",
	"enter_activation":      "use a native <button> or <a href>, or handle onKeyDown for Enter alongside onClick",
	"space_activation":      "use a native <button>, or handle Space in onKeyDown for role=\"button\" elements",
	"escape_not_closing":    "close the dialog on Escape and set aria-hidden or unmount it",
	"arrow_navigation":      "move focus between tabs with ArrowLeft/ArrowRight (roving tabIndex)",
}

// manualFixes turns non-a11y findings into actionable unfixed entries.
func manualFixes(v domain.ViolationSet) []domain.FixEntry {
	var out []domain.FixEntry

	for _, issue := range v.Keyboard {
		s, ok := keyboardSuggestions[issue.Type]
		if !ok {
			s = "make the component operable with Tab, Enter, Space and Escape"
		}
		out = append(out, domain.FixEntry{
			Type:        "keyboard:" + issue.Type,
			Description: issue.Message,
			Suggestion:  s,
		})
	}

	for _, issue := range v.Focus {
		s := "add a visible :focus-visible style, e.g. outline: 2px solid with at least 3:1 contrast"
		if issue.Type == "low_focus_contrast" {
			s = fmt.Sprintf("raise the focus indicator contrast to %s (currently %s)", firstNonEmpty(issue.Expected, "3:1"), firstNonEmpty(issue.Actual, "unknown"))
		}
		out = append(out, domain.FixEntry{
			Type:        "focus:" + issue.Type,
			Description: issue.Message,
			Suggestion:  s,
		})
	}

	for _, c := range v.Contrast {
		s := fmt.Sprintf("raise contrast to at least %.1f:1", c.Required)
		if len(c.Suggestions) > 0 {
			best := c.Suggestions[0]
			s = fmt.Sprintf("use %s on %s (%.2f:1, %s)", best.Foreground, best.Background, best.Ratio, best.Strategy)
		}
		out = append(out, domain.FixEntry{
			Type:        "contrast",
			Description: fmt.Sprintf("%s (%s): %.2f:1 is below %.1f:1", c.Element, c.State, c.Ratio, c.Required),
			Suggestion:  s,
		})
	}

	for _, t := range v.Tokens {
		out = append(out, domain.FixEntry{
			Type:        "tokens:" + t.Category,
			Description: fmt.Sprintf("%s: %s is not a design token", t.Property, t.Actual),
			Suggestion:  fmt.Sprintf("replace %s with %s", t.Actual, t.Expected),
		})
	}

	return out
}
