package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/uikraft/internal/domain"
)

func TestStripModuleSyntax(t *testing.T) {
	code := `import React, { useState } from 'react';
import {
  Icon,
  Label,
} from "./parts";
import './styles.css';

export interface Props { label: string }
export default function Button({ label }: Props) {
  return <button>{label}</button>;
}
export const Small = () => <Button label="s" />;
export { Small as Tiny };
`
	out := stripModuleSyntax(code)

	assert.NotContains(t, out, "import")
	assert.NotContains(t, out, "export")
	assert.Contains(t, out, "interface Props")
	assert.Contains(t, out, "function Button({ label }: Props)")
	assert.Contains(t, out, "const Small = () =>")
}

func TestStripModuleSyntax_DefaultIdentifier(t *testing.T) {
	out := stripModuleSyntax("const Card = () => <div />;\nexport default Card;\n")
	assert.Equal(t, "const Card = () => <div />;\n\n", out)
}

func TestHarness_Document(t *testing.T) {
	h := NewHarness(domain.RuntimeConfig{ReactURL: "https://cdn.example/react.js"})
	doc, err := h.Document(domain.ComponentSource{
		Name: "Banner",
		Code: "export const Banner = () => <p>{'</script>'}</p>;",
	}, map[string]any{"variant": "warning"})
	require.NoError(t, err)

	assert.Contains(t, doc, `<div id="root"></div>`)
	assert.Contains(t, doc, `src="https://cdn.example/react.js"`)
	assert.Contains(t, doc, domain.DefaultBabelURL)
	assert.Contains(t, doc, "window.__uikraftComponent = Banner;")
	assert.Contains(t, doc, `React.createElement(window.__uikraftComponent, {"variant":"warning"})`)
	assert.Contains(t, doc, `<\/script>`)
	// three runtime tags, the source block and the bootstrap
	assert.Equal(t, 5, strings.Count(doc, "</script>\n"))
}

func TestHarness_DocumentRequiresName(t *testing.T) {
	_, err := NewHarness(domain.RuntimeConfig{}).Document(domain.ComponentSource{Code: "x"}, nil)
	assert.Error(t, err)
}

func TestHarness_InjectAxeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "axe.min.js")
	require.NoError(t, os.WriteFile(path, []byte("window.axe = { run: function () {} };"), 0o644))

	page := &scriptRecorder{}
	h := NewHarness(domain.RuntimeConfig{AxePath: path})
	require.NoError(t, h.InjectAxe(context.Background(), page))
	require.Len(t, page.scripts, 2)
	assert.True(t, strings.HasPrefix(page.scripts[0], "window.axe ="))
}

func TestHarness_InjectAxeMissingFile(t *testing.T) {
	h := NewHarness(domain.RuntimeConfig{AxePath: filepath.Join(t.TempDir(), "missing.js")})
	err := h.InjectAxe(context.Background(), &scriptRecorder{})
	assert.True(t, errors.Is(err, domain.ErrScriptInjection))
}

// scriptRecorder accepts any script and reports axe as present.
type scriptRecorder struct {
	fakePage
	scripts []string
}

func (r *scriptRecorder) Evaluate(_ context.Context, script string, out any) error {
	r.scripts = append(r.scripts, script)
	if b, ok := out.(*bool); ok {
		*b = true
	}
	return nil
}
