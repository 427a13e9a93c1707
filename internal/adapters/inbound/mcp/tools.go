package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/uikraft/internal/application"
	"github.com/openkraft/uikraft/internal/bootstrap"
	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/color"
)

// registerTools registers all uikraft MCP tools on the given server.
func registerTools(s *server.MCPServer, app *bootstrap.App) {
	// 1. uikraft_validate_a11y
	s.AddTool(
		mcplib.NewTool("uikraft_validate_a11y",
			mcplib.WithDescription("Render a React component in a headless browser and run axe-core against it, once per variant."),
			withSource(),
			mcplib.WithString("variants", mcplib.Description("Comma-separated variant names passed as the variant prop")),
		),
		handleValidateA11y(app),
	)

	// 2. uikraft_validate_keyboard
	s.AddTool(
		mcplib.NewTool("uikraft_validate_keyboard",
			mcplib.WithDescription("Drive a rendered component with Tab, Enter, Space, Escape and arrow keys and report keyboard navigation issues."),
			withSource(),
			mcplib.WithString("component_type",
				mcplib.Description("Component type selecting which keyboard tests apply"),
				mcplib.Enum(componentTypes()...),
			),
		),
		handleValidateKeyboard(app),
	)

	// 3. uikraft_validate_focus
	s.AddTool(
		mcplib.NewTool("uikraft_validate_focus",
			mcplib.WithDescription("Check that every focusable element shows a visible, sufficiently contrasting focus indicator."),
			withSource(),
		),
		handleValidateFocus(app),
	)

	// 4. uikraft_validate_contrast
	s.AddTool(
		mcplib.NewTool("uikraft_validate_contrast",
			mcplib.WithDescription("Measure text and UI contrast of a rendered component in its default, hover, focus and disabled states."),
			withSource(),
		),
		handleValidateContrast(app),
	)

	// 5. uikraft_validate_tokens
	s.AddTool(
		mcplib.NewTool("uikraft_validate_tokens",
			mcplib.WithDescription("Score how closely a component's colors, typography and spacing follow the design tokens."),
			withSource(),
			mcplib.WithObject("styles", mcplib.Description("Explicit CSS property map to score instead of extracting styles")),
			mcplib.WithObject("tokens", mcplib.Description("Design tokens with colors, typography and spacing maps")),
			mcplib.WithString("tokens_file", mcplib.Description("Path to a YAML or JSON design tokens file")),
			mcplib.WithBoolean("computed", mcplib.Description("Read computed styles from the rendered component")),
		),
		handleValidateTokens(app),
	)

	// 6. uikraft_validate_all
	s.AddTool(
		mcplib.NewTool("uikraft_validate_all",
			mcplib.WithDescription("Run every enabled validator in parallel on one browser and record the run in history."),
			withSource(),
			mcplib.WithString("variants", mcplib.Description("Comma-separated variant names for the a11y audit")),
			mcplib.WithString("component_type",
				mcplib.Description("Component type for the keyboard tests"),
				mcplib.Enum(componentTypes()...),
			),
			mcplib.WithObject("styles", mcplib.Description("Explicit CSS property map for the token audit")),
			mcplib.WithObject("tokens", mcplib.Description("Design tokens with colors, typography and spacing maps")),
			mcplib.WithString("tokens_file", mcplib.Description("Path to a YAML or JSON design tokens file")),
			mcplib.WithBoolean("computed", mcplib.Description("Read computed styles for the token audit")),
		),
		handleValidateAll(app),
	)

	// 7. uikraft_fix
	s.AddTool(
		mcplib.NewTool("uikraft_fix",
			mcplib.WithDescription("Apply rule-based fixes for reported violations to component source and return the patched code with a diff."),
			mcplib.WithString("code", mcplib.Required(), mcplib.Description("Component source code")),
			mcplib.WithObject("violations", mcplib.Required(),
				mcplib.Description("Violation set keyed by a11y, keyboard, focus, contrast and tokens, or validation results"),
			),
		),
		handleFix(app),
	)

	// 8. uikraft_contrast_ratio
	s.AddTool(
		mcplib.NewTool("uikraft_contrast_ratio",
			mcplib.WithDescription("Compute the WCAG contrast ratio of two colors with AA/AAA verdicts and accessible suggestions."),
			mcplib.WithString("foreground", mcplib.Required(), mcplib.Description("Foreground color (hex, rgb() or a CSS name)")),
			mcplib.WithString("background", mcplib.Required(), mcplib.Description("Background color (hex, rgb() or a CSS name)")),
		),
		handleContrastRatio(),
	)
}

func withSource() mcplib.ToolOption {
	return func(t *mcplib.Tool) {
		mcplib.WithString("code", mcplib.Description("Component source code (JSX/TSX). Either code or path is required"))(t)
		mcplib.WithString("path", mcplib.Description("Component file, relative to the project root"))(t)
		mcplib.WithString("name", mcplib.Description("Component to mount; inferred from the exports when omitted"))(t)
	}
}

func componentTypes() []string {
	out := make([]string, len(domain.ValidComponentTypes))
	for i, t := range domain.ValidComponentTypes {
		out[i] = string(t)
	}
	return out
}

func handleValidateA11y(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := componentSource(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return validationResult(app.A11y.Validate(ctx, src, splitList(request.GetString("variants", ""))))
	}
}

func handleValidateKeyboard(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := componentSource(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		ct, ok := domain.ParseComponentType(request.GetString("component_type", ""))
		if !ok {
			return errorResult(fmt.Sprintf("unknown component_type %q", request.GetString("component_type", ""))), nil
		}
		return validationResult(app.Keyboard.Validate(ctx, src, ct))
	}
}

func handleValidateFocus(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := componentSource(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return validationResult(app.Focus.Validate(ctx, src))
	}
}

func handleValidateContrast(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := componentSource(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return validationResult(app.Contrast.Validate(ctx, src))
	}
}

func handleValidateTokens(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := componentSource(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		tokens, err := designTokens(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return validationResult(app.Tokens.Validate(ctx, application.TokenRequest{
			Source:   src,
			Styles:   stringMap(request.GetArguments()["styles"]),
			Tokens:   tokens,
			Computed: request.GetBool("computed", false),
		}))
	}
}

func handleValidateAll(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := componentSource(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		ct, ok := domain.ParseComponentType(request.GetString("component_type", ""))
		if !ok {
			return errorResult(fmt.Sprintf("unknown component_type %q", request.GetString("component_type", ""))), nil
		}
		tokens, err := designTokens(app, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report := app.Suite.Run(ctx, application.SuiteRequest{
			Source:        src,
			Variants:      splitList(request.GetString("variants", "")),
			ComponentType: ct,
			Styles:        stringMap(request.GetArguments()["styles"]),
			Tokens:        tokens,
			Computed:      request.GetBool("computed", false),
			ProjectPath:   app.ProjectPath,
		})
		return jsonResult(report)
	}
}

func handleFix(app *bootstrap.App) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		code, err := request.RequireString("code")
		if err != nil {
			return errorResult("code parameter is required"), nil
		}
		raw, ok := request.GetArguments()["violations"]
		if !ok || raw == nil {
			return errorResult("violations parameter is required"), nil
		}
		data, err := rawJSON(raw)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid violations: %v", err)), nil
		}
		violations, err := application.DecodeViolations(data)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid violations: %v", err)), nil
		}
		return jsonResult(app.Fix.Fix(code, violations))
	}
}

func handleContrastRatio() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		fgArg, err := request.RequireString("foreground")
		if err != nil {
			return errorResult("foreground parameter is required"), nil
		}
		bgArg, err := request.RequireString("background")
		if err != nil {
			return errorResult("background parameter is required"), nil
		}
		fg, ok := color.Parse(fgArg)
		if !ok {
			return errorResult(fmt.Sprintf("cannot parse foreground color %q", fgArg)), nil
		}
		bg, ok := color.Parse(bgArg)
		if !ok {
			return errorResult(fmt.Sprintf("cannot parse background color %q", bgArg)), nil
		}
		return jsonResult(color.Assess(fg, bg))
	}
}

// componentSource reads the component from path or takes it inline.
func componentSource(app *bootstrap.App, request mcplib.CallToolRequest) (domain.ComponentSource, error) {
	name := request.GetString("name", "")
	if path := request.GetString("path", ""); path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(app.ProjectPath, path)
		}
		return application.ReadComponent(path, name)
	}
	code := request.GetString("code", "")
	if code == "" {
		return domain.ComponentSource{}, errors.New("either code or path is required")
	}
	if name == "" {
		name = application.InferComponentName(code, "")
	}
	if name == "" {
		return domain.ComponentSource{}, errors.New("cannot infer the component name, pass name")
	}
	return domain.ComponentSource{Code: code, Name: name}, nil
}

// designTokens resolves inline tokens, then tokens_file, then the project
// configuration.
func designTokens(app *bootstrap.App, request mcplib.CallToolRequest) (*domain.DesignTokens, error) {
	if raw, ok := request.GetArguments()["tokens"]; ok && raw != nil {
		data, err := rawJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid tokens: %w", err)
		}
		var t domain.DesignTokens
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("invalid tokens: %w", err)
		}
		return &t, nil
	}
	path := request.GetString("tokens_file", "")
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(app.ProjectPath, path)
	}
	return app.DesignTokens(path)
}

// rawJSON accepts either a decoded object or a JSON string.
func rawJSON(v any) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(v)
}

// stringMap keeps an explicit empty object distinct from an absent argument.
func stringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = fmt.Sprint(val)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validationResult reports infrastructure failures as tool errors; a failing
// validation is a normal result.
func validationResult(res *domain.ValidationResult, err error) (*mcplib.CallToolResult, error) {
	if err != nil {
		return errorResult(fmt.Sprintf("validation could not run: %v", err)), nil
	}
	return jsonResult(res)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
