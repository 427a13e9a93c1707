package domain

// Validator-specific ValidationResult.Details payloads. The token validator's
// payload lives in package tokens alongside its scoring.

// A11yDetails is returned by the accessibility validator.
type A11yDetails struct {
	Violations           []A11yViolation `json:"violations"`
	ViolationsBySeverity map[string]int  `json:"violationsBySeverity"`
	Variants             []string        `json:"variants"`
}

// Keyboard test categories, used as IssuesByType keys.
const (
	KeyboardTestTabNavigation = "tab_navigation"
	KeyboardTestTabOrder      = "tab_order"
	KeyboardTestActivation    = "activation"
	KeyboardTestEscape        = "escape"
	KeyboardTestArrowKeys     = "arrow_keys"
)

// KeyboardDetails is returned by the keyboard navigation validator.
type KeyboardDetails struct {
	ComponentType  ComponentType   `json:"componentType"`
	Issues         []KeyboardIssue `json:"issues"`
	IssuesByType   map[string]int  `json:"issuesByType"`
	FocusableCount int             `json:"focusableCount"`
	FocusOrder     []string        `json:"focusOrder"`
	TestsRun       []string        `json:"testsRun"`
	Notes          []string        `json:"notes,omitempty"`
}

// FocusCheck is the per-element outcome of the focus indicator validator.
type FocusCheck struct {
	Element      string      `json:"element"`
	HasIndicator bool        `json:"hasIndicator"`
	Styles       *FocusStyle `json:"styles,omitempty"`
}

// FocusDetails is returned by the focus indicator validator.
type FocusDetails struct {
	Checked []FocusCheck `json:"checked"`
	Issues  []FocusIssue `json:"issues"`
	Note    string       `json:"note,omitempty"`
}

// Contrast states.
const (
	StateDefault  = "default"
	StateHover    = "hover"
	StateFocus    = "focus"
	StateDisabled = "disabled"
)

// ContrastDetails is returned by the color contrast validator.
type ContrastDetails struct {
	Checked    int                 `json:"checked"`
	Violations []ContrastViolation `json:"violations"`
	ByState    map[string]int      `json:"byState"`
	Note       string              `json:"note,omitempty"`
}
