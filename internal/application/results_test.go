package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/tokens"
)

func sampleResults() []*domain.ValidationResult {
	return []*domain.ValidationResult{
		domain.NewValidationResult(domain.ValidatorA11y, []string{"[critical] button-name"}, nil, &domain.A11yDetails{
			Violations: []domain.A11yViolation{{ID: "button-name", Impact: domain.SeverityCritical}},
		}),
		domain.NewValidationResult(domain.ValidatorContrast, nil, nil, &domain.ContrastDetails{
			Violations: []domain.ContrastViolation{{Element: "button", State: "hover", Ratio: 2.1, Required: 4.5}},
		}),
		domain.NewValidationResult(domain.ValidatorTokens, nil, nil, &tokens.Report{
			Score:      80,
			Violations: []domain.TokenViolation{{Category: "color", Property: "color", Actual: "#FF0000"}},
		}),
	}
}

func TestDecodeResults_RestoresTypedDetails(t *testing.T) {
	data, err := json.Marshal(sampleResults())
	require.NoError(t, err)

	results, err := DecodeResults(data)
	require.NoError(t, err)
	require.Len(t, results, 3)

	a11y, ok := results[0].Details.(*domain.A11yDetails)
	require.True(t, ok)
	assert.Equal(t, "button-name", a11y.Violations[0].ID)
	assert.False(t, results[0].Valid)

	report, ok := results[2].Details.(*tokens.Report)
	require.True(t, ok)
	assert.InDelta(t, 80.0, report.Score, 0.001)
}

func TestDecodeResults_SingleAndSuite(t *testing.T) {
	single, err := json.Marshal(sampleResults()[1])
	require.NoError(t, err)
	results, err := DecodeResults(single)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.IsType(t, &domain.ContrastDetails{}, results[0].Details)

	suite, err := json.Marshal(&domain.SuiteReport{RunID: "1a2b3c4d", Results: sampleResults()})
	require.NoError(t, err)
	results, err = DecodeResults(suite)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestDecodeResults_Rejects(t *testing.T) {
	_, err := DecodeResults([]byte("  "))
	assert.Error(t, err)

	_, err = DecodeResults([]byte(`{"validator": "layout", "details": {}}`))
	assert.ErrorContains(t, err, `unknown validator "layout"`)

	_, err = DecodeResults([]byte(`{"validator": "a11y", "details": {"violations": 3}}`))
	assert.ErrorContains(t, err, "parsing a11y details")
}

func TestViolationsFrom(t *testing.T) {
	set := ViolationsFrom(append(sampleResults(), nil))
	assert.Len(t, set.A11y, 1)
	assert.Len(t, set.Contrast, 1)
	assert.Len(t, set.Tokens, 1)
	assert.Empty(t, set.Keyboard)
}

func TestDecodeViolations(t *testing.T) {
	set, err := DecodeViolations([]byte(`{"a11y": [{"id": "image-alt", "impact": "critical"}]}`))
	require.NoError(t, err)
	require.Len(t, set.A11y, 1)
	assert.Equal(t, "image-alt", set.A11y[0].ID)

	data, err := json.Marshal(sampleResults())
	require.NoError(t, err)
	set, err = DecodeViolations(data)
	require.NoError(t, err)
	assert.Len(t, set.A11y, 1)
	assert.Len(t, set.Tokens, 1)
}
