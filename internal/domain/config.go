package domain

import (
	"fmt"
	"time"
)

// Default CDN locations for the render harness and rule engine.
const (
	DefaultReactURL    = "https://unpkg.com/react@18/umd/react.development.js"
	DefaultReactDOMURL = "https://unpkg.com/react-dom@18/umd/react-dom.development.js"
	DefaultBabelURL    = "https://unpkg.com/@babel/standalone/babel.min.js"
	DefaultAxeURL      = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.8.2/axe.min.js"
)

// Default timeouts and thresholds.
const (
	DefaultRenderTimeout     = 5 * time.Second
	DefaultValidatorTimeout  = 60 * time.Second
	DefaultActivationTimeout = 500 * time.Millisecond
	DefaultTokenThreshold    = 90.0
)

// ProjectConfig holds project-level configuration loaded from .uikraft.yaml.
type ProjectConfig struct {
	Browser    BrowserConfig   `yaml:"browser"     json:"browser"`
	Timeouts   TimeoutConfig   `yaml:"timeouts"    json:"timeouts"`
	Runtime    RuntimeConfig   `yaml:"runtime"     json:"runtime"`
	TokensFile string          `yaml:"tokens_file" json:"tokens_file,omitempty"`
	Thresholds ThresholdConfig `yaml:"thresholds"  json:"thresholds"`
	Skip       []string        `yaml:"skip"        json:"skip,omitempty"`
}

// BrowserConfig controls how the shared Chromium process is launched.
type BrowserConfig struct {
	Headless  *bool  `yaml:"headless,omitempty"   json:"headless,omitempty"`
	ExecPath  string `yaml:"exec_path,omitempty"  json:"exec_path,omitempty"`
	NoSandbox bool   `yaml:"no_sandbox,omitempty" json:"no_sandbox,omitempty"`
}

// IsHeadless defaults to true when unset.
func (b BrowserConfig) IsHeadless() bool {
	return b.Headless == nil || *b.Headless
}

// TimeoutConfig bounds browser work.
type TimeoutConfig struct {
	Render     time.Duration `yaml:"render"     json:"render"`
	Validator  time.Duration `yaml:"validator"  json:"validator"`
	Activation time.Duration `yaml:"activation" json:"activation"`
}

// RuntimeConfig points the render harness at its scripts.
// AxePath, when set, is read from disk instead of fetching AxeURL.
type RuntimeConfig struct {
	ReactURL    string `yaml:"react_url"     json:"react_url"`
	ReactDOMURL string `yaml:"react_dom_url" json:"react_dom_url"`
	BabelURL    string `yaml:"babel_url"     json:"babel_url"`
	AxeURL      string `yaml:"axe_url"       json:"axe_url"`
	AxePath     string `yaml:"axe_path"      json:"axe_path,omitempty"`
}

// ThresholdConfig holds token adherence pass marks (percent).
type ThresholdConfig struct {
	TokenOverall  float64 `yaml:"token_overall"  json:"token_overall"`
	TokenCategory float64 `yaml:"token_category" json:"token_category"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Timeouts: TimeoutConfig{
			Render:     DefaultRenderTimeout,
			Validator:  DefaultValidatorTimeout,
			Activation: DefaultActivationTimeout,
		},
		Runtime: RuntimeConfig{
			ReactURL:    DefaultReactURL,
			ReactDOMURL: DefaultReactDOMURL,
			BabelURL:    DefaultBabelURL,
			AxeURL:      DefaultAxeURL,
		},
		Thresholds: ThresholdConfig{
			TokenOverall:  DefaultTokenThreshold,
			TokenCategory: DefaultTokenThreshold,
		},
	}
}

// IsSkipped reports whether the named validator is excluded from suite runs.
func (c ProjectConfig) IsSkipped(validator string) bool {
	for _, s := range c.Skip {
		if s == validator {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. timeouts must not be negative
	timeouts := map[string]time.Duration{
		"render":     c.Timeouts.Render,
		"validator":  c.Timeouts.Validator,
		"activation": c.Timeouts.Activation,
	}
	for name, d := range timeouts {
		if d < 0 {
			return fmt.Errorf("timeouts.%s must not be negative (got %s)", name, d)
		}
	}

	// 2. thresholds are percentages
	if c.Thresholds.TokenOverall < 0 || c.Thresholds.TokenOverall > 100 {
		return fmt.Errorf("thresholds.token_overall = %.1f (must be between 0 and 100)", c.Thresholds.TokenOverall)
	}
	if c.Thresholds.TokenCategory < 0 || c.Thresholds.TokenCategory > 100 {
		return fmt.Errorf("thresholds.token_category = %.1f (must be between 0 and 100)", c.Thresholds.TokenCategory)
	}

	// 3. skip entries must name validators, and at least one must remain
	skipped := make(map[string]bool, len(c.Skip))
	for _, s := range c.Skip {
		if !isValidValidator(s) {
			return fmt.Errorf("unknown validator %q in skip (valid: a11y, keyboard, focus, contrast, tokens)", s)
		}
		skipped[s] = true
	}
	if len(skipped) >= len(ValidatorNames) {
		return fmt.Errorf("cannot skip all validators (must have at least one active)")
	}

	// 4. validator budget must leave room for the render wait
	if c.Timeouts.Validator > 0 && c.Timeouts.Render > 0 && c.Timeouts.Validator < c.Timeouts.Render {
		return fmt.Errorf("timeouts.validator (%s) must be at least timeouts.render (%s)", c.Timeouts.Validator, c.Timeouts.Render)
	}

	return nil
}

func isValidValidator(name string) bool {
	for _, v := range ValidatorNames {
		if v == name {
			return true
		}
	}
	return false
}
