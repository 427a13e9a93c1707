package domain

import "time"

// Validator names used in results, history entries and CLI subcommands.
const (
	ValidatorA11y     = "a11y"
	ValidatorKeyboard = "keyboard"
	ValidatorFocus    = "focus"
	ValidatorContrast = "contrast"
	ValidatorTokens   = "tokens"
)

// ValidatorNames enumerates all validators in suite order.
var ValidatorNames = []string{
	ValidatorA11y, ValidatorKeyboard, ValidatorFocus, ValidatorContrast, ValidatorTokens,
}

// ValidationResult is the uniform contract every validator returns.
// Valid is true iff Errors is empty; build it with NewValidationResult.
type ValidationResult struct {
	Validator string   `json:"validator"`
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Details   any      `json:"details"`
}

// NewValidationResult builds a result whose Valid flag is derived from errs.
func NewValidationResult(validator string, errs, warnings []string, details any) *ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return &ValidationResult{
		Validator: validator,
		Valid:     len(errs) == 0,
		Errors:    errs,
		Warnings:  warnings,
		Details:   details,
	}
}

// Severity is the four-level taxonomy shared by all validators.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySerious  Severity = "serious"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// Blocking reports whether findings of this severity belong in Errors
// under the accessibility classification (critical and serious block).
func (s Severity) Blocking() bool {
	return s == SeverityCritical || s == SeveritySerious
}

// Rank orders severities for sorting, lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeveritySerious:
		return 1
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 3
	default:
		return 4
	}
}

// ComponentType selects which keyboard tests apply.
type ComponentType string

const (
	ComponentButton   ComponentType = "button"
	ComponentInput    ComponentType = "input"
	ComponentModal    ComponentType = "modal"
	ComponentDialog   ComponentType = "dialog"
	ComponentDropdown ComponentType = "dropdown"
	ComponentTabs     ComponentType = "tabs"
	ComponentSelect   ComponentType = "select"
	ComponentLink     ComponentType = "link"
	ComponentGeneral  ComponentType = "general"
)

// ValidComponentTypes enumerates all recognized component types.
var ValidComponentTypes = []ComponentType{
	ComponentButton, ComponentInput, ComponentModal, ComponentDialog,
	ComponentDropdown, ComponentTabs, ComponentSelect, ComponentLink, ComponentGeneral,
}

// ParseComponentType maps a user-supplied string to a ComponentType.
// Empty input yields ComponentGeneral.
func ParseComponentType(s string) (ComponentType, bool) {
	if s == "" {
		return ComponentGeneral, true
	}
	for _, t := range ValidComponentTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// IsInteractive reports whether a component of this type must expose at
// least one focusable element.
func (t ComponentType) IsInteractive() bool {
	return t == ComponentButton || t == ComponentInput || t == ComponentLink
}

// ComponentSource is the input every browser-driven validator renders.
type ComponentSource struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// A11yViolation is a single axe-core rule violation.
type A11yViolation struct {
	ID          string     `json:"id"`
	Impact      Severity   `json:"impact"`
	Description string     `json:"description"`
	Help        string     `json:"help"`
	HelpURL     string     `json:"helpUrl"`
	Tags        []string   `json:"tags,omitempty"`
	Nodes       []A11yNode `json:"nodes"`
	Variant     string     `json:"variant,omitempty"`
}

// A11yNode is one DOM node affected by a violation.
type A11yNode struct {
	HTML   string   `json:"html"`
	Target []string `json:"target"`
	Impact string   `json:"impact,omitempty"`
}

// KeyboardIssue is a keyboard-operability finding.
type KeyboardIssue struct {
	Type     string   `json:"type"`
	Test     string   `json:"test"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Expected string   `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
}

// FocusIssue is a focus-indicator finding for one element.
type FocusIssue struct {
	Type     string      `json:"type"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
	Element  string      `json:"element"`
	Expected string      `json:"expected,omitempty"`
	Actual   string      `json:"actual,omitempty"`
	Styles   *FocusStyle `json:"styles,omitempty"`
}

// FocusStyle is the computed style snapshot of a focused element.
type FocusStyle struct {
	OutlineWidth     string `json:"outlineWidth"`
	OutlineStyle     string `json:"outlineStyle"`
	OutlineColor     string `json:"outlineColor"`
	BoxShadow        string `json:"boxShadow"`
	BorderWidth      string `json:"borderWidth"`
	BorderColor      string `json:"borderColor"`
	BackgroundColor  string `json:"backgroundColor"`
	Color            string `json:"color"`
	ParentBackground string `json:"parentBackground"`
}

// ContrastViolation is one failing element/state pair.
type ContrastViolation struct {
	Element     string            `json:"element"`
	State       string            `json:"state"`
	Kind        string            `json:"kind"`
	Foreground  string            `json:"foreground"`
	Background  string            `json:"background"`
	Ratio       float64           `json:"ratio"`
	Required    float64           `json:"required"`
	Severity    Severity          `json:"severity"`
	Suggestions []ColorSuggestion `json:"suggestions,omitempty"`
}

// ColorSuggestion is an accessible replacement color pair.
type ColorSuggestion struct {
	Strategy   string  `json:"strategy"`
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
}

// TokenViolation is a style value that does not resolve to a design token.
type TokenViolation struct {
	Category        string   `json:"category"`
	Property        string   `json:"property"`
	Expected        string   `json:"expected"`
	Actual          string   `json:"actual"`
	DeltaE          *float64 `json:"deltaE,omitempty"`
	WithinTolerance bool     `json:"withinTolerance"`
}

// Token categories.
const (
	TokenCategoryColor      = "color"
	TokenCategoryTypography = "typography"
	TokenCategorySpacing    = "spacing"
)

// SuiteReport bundles the results of one run of all validators.
type SuiteReport struct {
	RunID      string              `json:"run_id"`
	Component  string              `json:"component"`
	CommitHash string              `json:"commit_hash,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
	Results    []*ValidationResult `json:"results"`
	Failures   map[string]string   `json:"failures,omitempty"`
}

// Passed reports whether every validator ran and returned Valid.
func (r *SuiteReport) Passed() bool {
	if len(r.Failures) > 0 {
		return false
	}
	for _, res := range r.Results {
		if res != nil && !res.Valid {
			return false
		}
	}
	return true
}

// RunEntry is one line of run history.
type RunEntry struct {
	RunID      string          `json:"run_id"`
	Timestamp  string          `json:"timestamp"`
	Component  string          `json:"component"`
	CommitHash string          `json:"commit_hash,omitempty"`
	Passed     bool            `json:"passed"`
	Validators map[string]bool `json:"validators"`
}
