package application

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/openkraft/uikraft/internal/domain"
)

var (
	reDefaultDecl  = regexp.MustCompile(`(?m)^\s*export\s+default\s+(?:function|class)\s+([A-Z][A-Za-z0-9_]*)`)
	reDefaultIdent = regexp.MustCompile(`(?m)^\s*export\s+default\s+([A-Z][A-Za-z0-9_]*)\s*;?\s*$`)
	reNamedDecl    = regexp.MustCompile(`(?m)^\s*export\s+(?:const|let|function|class)\s+([A-Z][A-Za-z0-9_]*)`)
)

// InferComponentName picks the component the harness should mount: the
// default export, else the first capitalized named export, else the file
// name in PascalCase.
func InferComponentName(code, path string) string {
	for _, re := range []*regexp.Regexp{reDefaultDecl, reDefaultIdent, reNamedDecl} {
		if m := re.FindStringSubmatch(code); m != nil {
			return m[1]
		}
	}
	return pascal(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func pascal(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ReadComponent loads a component file. An empty name is inferred.
func ReadComponent(path, name string) (domain.ComponentSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ComponentSource{}, fmt.Errorf("reading component: %w", err)
	}
	code := string(data)
	if name == "" {
		name = InferComponentName(code, path)
	}
	if name == "" {
		return domain.ComponentSource{}, fmt.Errorf("cannot infer component name for %s, pass one explicitly", path)
	}
	return domain.ComponentSource{Code: code, Name: name}, nil
}
