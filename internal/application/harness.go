package application

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/openkraft/uikraft/internal/domain"
)

// RootSelector is the mount point of the render harness. A child under it is
// the render signal.
const (
	RootSelector  = "#root"
	RenderedProbe = "#root > *"
)

var (
	importStmt     = regexp.MustCompile(`(?ms)^\s*import\s[^;]*?\sfrom\s*['"][^'"]+['"]\s*;?[ \t]*$`)
	sideEffectStmt = regexp.MustCompile(`(?m)^\s*import\s*['"][^'"]+['"]\s*;?[ \t]*$`)
	exportList     = regexp.MustCompile(`(?m)^\s*export\s*\{[^}]*\}\s*(from\s*['"][^'"]+['"])?\s*;?[ \t]*$`)
	exportDefault  = regexp.MustCompile(`(?m)^(\s*)export\s+default\s+(function|class|async\s+function)\b`)
	exportDefExpr  = regexp.MustCompile(`(?m)^\s*export\s+default\s+([A-Za-z_$][\w$]*)\s*;?[ \t]*$`)
	exportDecl     = regexp.MustCompile(`(?m)^(\s*)export\s+(const|let|var|function|class|async\s+function|interface|type|enum)\b`)
)

// stripModuleSyntax removes import and export syntax so the component can
// run as a classic script. React is provided as a global.
func stripModuleSyntax(code string) string {
	code = importStmt.ReplaceAllString(code, "")
	code = sideEffectStmt.ReplaceAllString(code, "")
	code = exportList.ReplaceAllString(code, "")
	code = exportDefExpr.ReplaceAllString(code, "")
	code = exportDefault.ReplaceAllString(code, "$1$2")
	code = exportDecl.ReplaceAllString(code, "$1$2")
	return code
}

// Harness builds self-contained HTML documents that mount a component.
type Harness struct {
	runtime domain.RuntimeConfig
}

func NewHarness(runtime domain.RuntimeConfig) *Harness {
	def := domain.DefaultConfig().Runtime
	if runtime.ReactURL == "" {
		runtime.ReactURL = def.ReactURL
	}
	if runtime.ReactDOMURL == "" {
		runtime.ReactDOMURL = def.ReactDOMURL
	}
	if runtime.BabelURL == "" {
		runtime.BabelURL = def.BabelURL
	}
	if runtime.AxeURL == "" && runtime.AxePath == "" {
		runtime.AxeURL = def.AxeURL
	}
	return &Harness{runtime: runtime}
}

// Document renders src.Name with props into #root. Props are JSON-encoded
// into the page.
func (h *Harness) Document(src domain.ComponentSource, props map[string]any) (string, error) {
	if src.Name == "" {
		return "", fmt.Errorf("component name is required")
	}
	if props == nil {
		props = map[string]any{}
	}
	encoded, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encoding props: %w", err)
	}

	body := stripModuleSyntax(src.Code)
	// a literal </script> would end the inline block early
	body = strings.ReplaceAll(body, "</script", "<\\/script")

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(src.Name))
	fmt.Fprintf(&sb, "<script crossorigin src=\"%s\"></script>\n", html.EscapeString(h.runtime.ReactURL))
	fmt.Fprintf(&sb, "<script crossorigin src=\"%s\"></script>\n", html.EscapeString(h.runtime.ReactDOMURL))
	fmt.Fprintf(&sb, "<script src=\"%s\"></script>\n", html.EscapeString(h.runtime.BabelURL))
	sb.WriteString("</head>\n<body>\n<div id=\"root\"></div>\n")
	sb.WriteString("<script type=\"text/plain\" id=\"component-source\">\n")
	sb.WriteString("const { useState, useEffect, useRef, useCallback, useMemo, useReducer, useContext, createContext, Fragment } = React;\n")
	sb.WriteString(body)
	fmt.Fprintf(&sb, "\nwindow.__uikraftComponent = %s;\n", src.Name)
	sb.WriteString("</script>\n")
	fmt.Fprintf(&sb, bootstrapJS, encoded)
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

// InjectAxe loads axe-core into page, from AxePath when configured, else
// from AxeURL. Failures wrap domain.ErrScriptInjection.
func (h *Harness) InjectAxe(ctx context.Context, page domain.Page) error {
	var script string
	if h.runtime.AxePath != "" {
		data, err := os.ReadFile(h.runtime.AxePath)
		if err != nil {
			return fmt.Errorf("%w: reading %s: %w", domain.ErrScriptInjection, h.runtime.AxePath, err)
		}
		script = string(data) + "\n;true"
	} else {
		script = fmt.Sprintf(loadScriptJS, jsString(h.runtime.AxeURL))
	}

	var loaded bool
	if err := page.Evaluate(ctx, script, &loaded); err != nil {
		return fmt.Errorf("%w: axe-core: %w", domain.ErrScriptInjection, err)
	}
	var present bool
	if err := page.Evaluate(ctx, `typeof window.axe !== 'undefined' && typeof window.axe.run === 'function'`, &present); err != nil || !present {
		return fmt.Errorf("%w: axe-core did not register window.axe", domain.ErrScriptInjection)
	}
	return nil
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
