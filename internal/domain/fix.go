package domain

// ViolationSet groups findings by validator for the auto-fixer.
type ViolationSet struct {
	A11y     []A11yViolation     `json:"a11y,omitempty"`
	Keyboard []KeyboardIssue     `json:"keyboard,omitempty"`
	Focus    []FocusIssue        `json:"focus,omitempty"`
	Contrast []ContrastViolation `json:"contrast,omitempty"`
	Tokens   []TokenViolation    `json:"tokens,omitempty"`
}

// IsEmpty reports whether the set holds no findings.
func (v ViolationSet) IsEmpty() bool {
	return len(v.A11y) == 0 && len(v.Keyboard) == 0 && len(v.Focus) == 0 &&
		len(v.Contrast) == 0 && len(v.Tokens) == 0
}

// FixEntry describes one fix that was applied, skipped, or could not be made.
type FixEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
	Elements    int    `json:"elements,omitempty"`
	Lines       []int  `json:"lines,omitempty"`
}

// AutoFixResult is the output of the auto-fixer.
type AutoFixResult struct {
	Success     bool       `json:"success"`
	Code        string     `json:"code"`
	Fixed       []FixEntry `json:"fixed"`
	Unfixed     []FixEntry `json:"unfixed"`
	Skipped     []FixEntry `json:"skipped,omitempty"`
	Diff        string     `json:"diff"`
	SuccessRate float64    `json:"success_rate"`
}

// HasFixes returns true if any fix was applied.
func (r *AutoFixResult) HasFixes() bool {
	return len(r.Fixed) > 0
}

// FixOptions controls the fix command.
type FixOptions struct {
	Write bool `json:"write"`
}
