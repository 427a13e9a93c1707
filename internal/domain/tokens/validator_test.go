package tokens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/tokens"
)

func decl(prop, value string) domain.StyleDeclaration {
	return domain.StyleDeclaration{Property: prop, Value: value, Source: domain.StyleSourceComputed}
}

func report(t *testing.T, r *domain.ValidationResult) *tokens.Report {
	t.Helper()
	rep, ok := r.Details.(*tokens.Report)
	require.True(t, ok, "details should be *tokens.Report")
	return rep
}

func TestValidate_EmptyStylesIsVacuousPass(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate(nil)

	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)

	rep := report(t, r)
	assert.Empty(t, rep.Violations)
	assert.Equal(t, 100.0, rep.Score)
	require.Len(t, rep.Categories, 3)
	for _, c := range rep.Categories {
		assert.Equal(t, 100.0, c.Score, c.Name)
		assert.Zero(t, c.Checks, c.Name)
	}
}

func TestValidate_ExactTokenMatchesPass(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate([]domain.StyleDeclaration{
		decl("backgroundColor", "#3B82F6"),
		decl("color", "rgb(255, 255, 255)"),
		decl("fontSize", "16px"),
		decl("fontWeight", "600"),
		decl("fontFamily", "Inter, system-ui, sans-serif"),
		decl("padding", "16"),
		decl("margin-top", "8px"),
	})

	assert.True(t, r.Valid, r.Errors)
	rep := report(t, r)
	assert.Empty(t, rep.Violations)
	assert.Equal(t, 7, rep.Checks)
	assert.Equal(t, 2, rep.Category(domain.TokenCategoryColor).Checks)
	assert.Equal(t, 3, rep.Category(domain.TokenCategoryTypography).Checks)
	assert.Equal(t, 2, rep.Category(domain.TokenCategorySpacing).Checks)
}

func TestValidate_NearColorWithinTolerance(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate([]domain.StyleDeclaration{decl("color", "#3C82F6")})

	assert.True(t, r.Valid)
	rep := report(t, r)
	assert.Empty(t, rep.Violations)
	require.Len(t, rep.ApproximateMatches, 1)
	m := rep.ApproximateMatches[0]
	assert.True(t, m.WithinTolerance)
	assert.Equal(t, "primary (#3B82F6)", m.Expected)
	require.NotNil(t, m.DeltaE)
	assert.LessOrEqual(t, *m.DeltaE, 2.0)
}

func TestValidate_OffPaletteColorIsViolation(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate([]domain.StyleDeclaration{decl("background-color", "#FF00AA")})

	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "below 90%")

	rep := report(t, r)
	require.Len(t, rep.Violations, 1)
	viol := rep.Violations[0]
	assert.Equal(t, domain.TokenCategoryColor, viol.Category)
	assert.Equal(t, "background-color", viol.Property)
	assert.Equal(t, "#FF00AA", viol.Actual)
	assert.False(t, viol.WithinTolerance)
	require.NotNil(t, viol.DeltaE)
	assert.Greater(t, *viol.DeltaE, 2.0)
	assert.Equal(t, 0.0, rep.Category(domain.TokenCategoryColor).Score)
}

func TestValidate_UnparseableColorIsSkipped(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate([]domain.StyleDeclaration{decl("color", "var(--brand)"), decl("color", "transparent")})

	assert.True(t, r.Valid)
	rep := report(t, r)
	assert.Zero(t, rep.Checks)
	assert.Len(t, rep.Skipped, 2)
}

func TestValidate_TypographyRules(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate([]domain.StyleDeclaration{
		decl("font-family", "Inter"), // single family, not a stack token
		decl("font-size", "15px"),
		decl("font-weight", "650"),
	})

	rep := report(t, r)
	require.Len(t, rep.Violations, 3)
	assert.Equal(t, "font-family", rep.Violations[0].Property)
	assert.Contains(t, rep.Violations[0].Expected, "font-sans")
	assert.Equal(t, "font-size", rep.Violations[1].Property)
	assert.Contains(t, rep.Violations[1].Expected, "px")
	assert.Equal(t, "font-weight", rep.Violations[2].Property)
	assert.NotContains(t, rep.Violations[2].Expected, "px")
}

func TestValidate_SpacingScoresAndWarnings(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	decls := []domain.StyleDeclaration{decl("padding", "13px")}
	for i := 0; i < 9; i++ {
		decls = append(decls, decl("color", "#0F172A"))
	}
	r := v.Validate(decls)

	rep := report(t, r)
	assert.InDelta(t, 90.0, rep.Score, 1e-9)
	assert.True(t, r.Valid, "overall at threshold passes")
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "spacing")
	assert.Equal(t, 0.0, rep.Category(domain.TokenCategorySpacing).Score)
	assert.Equal(t, 100.0, rep.Category(domain.TokenCategoryColor).Score)
}

func TestValidate_CustomTokensAndThresholds(t *testing.T) {
	custom := &domain.DesignTokens{
		Colors:  map[string]string{"brand": "#FF00AA"},
		Spacing: map[string]string{"gutter": "13px"},
	}
	v := tokens.NewValidator(custom, domain.ThresholdConfig{TokenOverall: 50, TokenCategory: 50})
	r := v.Validate([]domain.StyleDeclaration{
		decl("color", "#FF00AA"),
		decl("padding", "13px"),
		decl("gap", "12px"),
		decl("fontSize", "14px"), // no typography tokens: skipped
	})

	rep := report(t, r)
	assert.Equal(t, 3, rep.Checks)
	assert.InDelta(t, 66.666, rep.Score, 0.01)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Warnings, "spacing at 50% meets a 50% category threshold")
}

func TestValidate_IgnoresUntrackedProperties(t *testing.T) {
	v := tokens.NewValidator(nil, domain.ThresholdConfig{})
	r := v.Validate([]domain.StyleDeclaration{decl("display", "flex"), decl("opacity", "0.5")})
	assert.Zero(t, report(t, r).Checks)
	assert.Empty(t, report(t, r).Skipped)
}

func TestNormalizeProperty(t *testing.T) {
	tests := map[string]string{
		"backgroundColor":  "background-color",
		"paddingTop":       "padding-top",
		"Background-Color": "background-color",
		"color":            "color",
		"columnGap":        "column-gap",
	}
	for in, want := range tests {
		assert.Equal(t, want, tokens.NormalizeProperty(in), in)
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "16px", tokens.NormalizeValue("padding", "16"))
	assert.Equal(t, "0px", tokens.NormalizeValue("margin", "0"))
	assert.Equal(t, "600", tokens.NormalizeValue("font-weight", "600"))
	assert.Equal(t, "1rem", tokens.NormalizeValue("padding", " 1rem "))
}
