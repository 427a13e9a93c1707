package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/uikraft/internal/bootstrap"
	"github.com/openkraft/uikraft/internal/domain"
)

func testApp(t *testing.T) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func call(t *testing.T, h func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error), args map[string]any) (*mcplib.CallToolResult, string) {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestContrastRatioTool(t *testing.T) {
	res, text := call(t, handleContrastRatio(), map[string]any{
		"foreground": "#767676",
		"background": "white",
	})
	require.False(t, res.IsError, text)

	var verdict struct {
		Ratio float64         `json:"ratio"`
		AA    map[string]bool `json:"aa"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &verdict))
	assert.InDelta(t, 4.54, verdict.Ratio, 0.01)
	assert.True(t, verdict.AA["normal_text"])
}

func TestContrastRatioTool_BadColor(t *testing.T) {
	res, text := call(t, handleContrastRatio(), map[string]any{
		"foreground": "not-a-color",
		"background": "#fff",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "cannot parse foreground")
}

func TestContrastRatioTool_MissingArgument(t *testing.T) {
	res, text := call(t, handleContrastRatio(), map[string]any{"foreground": "#000"})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "background parameter is required")
}

func TestFixTool(t *testing.T) {
	app := testApp(t)
	res, text := call(t, handleFix(app), map[string]any{
		"code": `<button onClick={x}></button>`,
		"violations": map[string]any{
			"a11y": []any{map[string]any{"id": "button-name", "impact": "critical"}},
		},
	})
	require.False(t, res.IsError, text)

	var fixed domain.AutoFixResult
	require.NoError(t, json.Unmarshal([]byte(text), &fixed))
	assert.Contains(t, fixed.Code, `aria-label="Button"`)
	require.Len(t, fixed.Fixed, 1)
	assert.Equal(t, "button-name", fixed.Fixed[0].Type)
}

func TestFixTool_InvalidViolations(t *testing.T) {
	app := testApp(t)
	res, text := call(t, handleFix(app), map[string]any{
		"code":       `<button></button>`,
		"violations": "{not json",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "invalid violations")
}

func TestValidateTokensTool_ProvidedStyles(t *testing.T) {
	app := testApp(t)
	res, text := call(t, handleValidateTokens(app), map[string]any{
		"code":   `export const Chip = () => <span />;`,
		"styles": map[string]any{"color": "#112233", "marginTop": "4px"},
		"tokens": map[string]any{
			"colors":  map[string]any{"ink": "#112233"},
			"spacing": map[string]any{"xs": "4px"},
		},
	})
	require.False(t, res.IsError, text)

	var result domain.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, domain.ValidatorTokens, result.Validator)
	assert.True(t, result.Valid)
}

func TestValidateTokensTool_EmptyStylesAreNotExtracted(t *testing.T) {
	app := testApp(t)
	res, text := call(t, handleValidateTokens(app), map[string]any{
		"code":   `export const Box = () => <div style={{ color: '#FF00AA', padding: 13 }} />;`,
		"styles": map[string]any{},
	})
	require.False(t, res.IsError, text)

	var result struct {
		Valid   bool `json:"valid"`
		Details struct {
			Score       float64 `json:"score"`
			Violations  []any   `json:"violations"`
			StyleSource string  `json:"style_source"`
			Categories  []struct {
				Score float64 `json:"score"`
			} `json:"categories"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Details.Violations)
	assert.Equal(t, "provided", result.Details.StyleSource)
	assert.Equal(t, 100.0, result.Details.Score)
	for _, c := range result.Details.Categories {
		assert.Equal(t, 100.0, c.Score)
	}
}

func TestStringMap(t *testing.T) {
	assert.Nil(t, stringMap(nil))
	assert.Equal(t, map[string]string{}, stringMap(map[string]any{}))
	assert.Equal(t, map[string]string{"padding": "4px"}, stringMap(map[string]any{"padding": "4px"}))
}

func TestValidateTokensTool_ReadsPath(t *testing.T) {
	app := testApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.ProjectPath, "Card.tsx"),
		[]byte(`export const Card = () => <div className="bg-[#3B82F6] text-[15px]" />;`), 0o644))

	res, text := call(t, handleValidateTokens(app), map[string]any{"path": "Card.tsx"})
	require.False(t, res.IsError, text)
	assert.Contains(t, text, `"validator": "tokens"`)
	assert.Contains(t, text, "font-size")
}

func TestValidateTools_RequireSource(t *testing.T) {
	app := testApp(t)
	res, text := call(t, handleValidateFocus(app), map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "either code or path is required")
}

func TestValidateKeyboardTool_UnknownType(t *testing.T) {
	app := testApp(t)
	res, text := call(t, handleValidateKeyboard(app), map[string]any{
		"code":           `export const X = () => <div />;`,
		"component_type": "carousel",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, text, `unknown component_type "carousel"`)
}

func TestResources(t *testing.T) {
	app := testApp(t)

	contents, err := handleDefaultTokensResource()(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcplib.TextResourceContents)
	assert.Equal(t, uriDefaultTokens, text.URI)
	assert.Contains(t, text.Text, `"primary": "#3B82F6"`)

	contents, err = handleHistoryResource(app)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "[]", contents[0].(mcplib.TextResourceContents).Text)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"primary", "ghost"}, splitList(" primary, ,ghost "))
	assert.Nil(t, splitList(""))
}
