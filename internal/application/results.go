package application

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/tokens"
)

type rawResult struct {
	Validator string          `json:"validator"`
	Valid     bool            `json:"valid"`
	Errors    []string        `json:"errors"`
	Warnings  []string        `json:"warnings"`
	Details   json.RawMessage `json:"details"`
}

// DecodeResults parses saved validator output: a single ValidationResult,
// a list of them, or a SuiteReport. Each result's Details is restored to
// its validator's typed payload.
func DecodeResults(data []byte) ([]*domain.ValidationResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no results to decode")
	}

	var raws []rawResult
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parsing results: %w", err)
		}
	} else {
		var probe struct {
			Validator string      `json:"validator"`
			Results   []rawResult `json:"results"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("parsing results: %w", err)
		}
		if probe.Validator == "" && probe.Results != nil {
			raws = probe.Results
		} else {
			var one rawResult
			if err := json.Unmarshal(data, &one); err != nil {
				return nil, fmt.Errorf("parsing results: %w", err)
			}
			raws = []rawResult{one}
		}
	}

	out := make([]*domain.ValidationResult, 0, len(raws))
	for _, r := range raws {
		details, err := decodeDetails(r.Validator, r.Details)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.NewValidationResult(r.Validator, r.Errors, r.Warnings, details))
	}
	return out, nil
}

func decodeDetails(validator string, raw json.RawMessage) (any, error) {
	var target any
	switch validator {
	case domain.ValidatorA11y:
		target = &domain.A11yDetails{}
	case domain.ValidatorKeyboard:
		target = &domain.KeyboardDetails{}
	case domain.ValidatorFocus:
		target = &domain.FocusDetails{}
	case domain.ValidatorContrast:
		target = &domain.ContrastDetails{}
	case domain.ValidatorTokens:
		target = &tokens.Report{}
	default:
		return nil, fmt.Errorf("unknown validator %q in results", validator)
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return target, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("parsing %s details: %w", validator, err)
	}
	return target, nil
}

// ViolationsFrom collects the fixer input from validator results.
func ViolationsFrom(results []*domain.ValidationResult) domain.ViolationSet {
	var set domain.ViolationSet
	for _, r := range results {
		if r == nil {
			continue
		}
		switch d := r.Details.(type) {
		case *domain.A11yDetails:
			set.A11y = append(set.A11y, d.Violations...)
		case *domain.KeyboardDetails:
			set.Keyboard = append(set.Keyboard, d.Issues...)
		case *domain.FocusDetails:
			set.Focus = append(set.Focus, d.Issues...)
		case *domain.ContrastDetails:
			set.Contrast = append(set.Contrast, d.Violations...)
		case *tokens.Report:
			set.Tokens = append(set.Tokens, d.Violations...)
		}
	}
	return set
}

// DecodeViolations accepts either a ViolationSet document or saved
// validator results.
func DecodeViolations(data []byte) (domain.ViolationSet, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &probe); err == nil {
		_, isResult := probe["validator"]
		_, isSuite := probe["results"]
		if !isResult && !isSuite {
			var set domain.ViolationSet
			if err := json.Unmarshal(data, &set); err != nil {
				return domain.ViolationSet{}, fmt.Errorf("parsing violations: %w", err)
			}
			return set, nil
		}
	}
	results, err := DecodeResults(data)
	if err != nil {
		return domain.ViolationSet{}, err
	}
	return ViolationsFrom(results), nil
}
