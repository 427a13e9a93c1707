// Package fix patches a small set of accessibility defects directly in
// component source and reports everything it could not fix.
package fix

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/openkraft/uikraft/internal/domain"
)

// rule attaches one attribute to every element of a tag that needs it.
type rule struct {
	tag   string
	attr  string
	needs func(el domain.JSXElement) bool
	value func(el domain.JSXElement) string
}

var rules = map[string]rule{
	"button-name": {
		tag:   "button",
		attr:  "aria-label",
		needs: func(el domain.JSXElement) bool { return !el.HasAttr("aria-label") },
		value: func(domain.JSXElement) string { return "Button" },
	},
	"link-name": {
		tag:  "a",
		attr: "aria-label",
		needs: func(el domain.JSXElement) bool {
			return !el.HasAttr("aria-label") && !el.HasAttr("children")
		},
		value: func(domain.JSXElement) string { return "Link" },
	},
	"image-alt": {
		tag:   "img",
		attr:  "alt",
		needs: func(el domain.JSXElement) bool { return !el.HasAttr("alt") },
		value: imageAlt,
	},
}

// Fixable reports whether the auto-fixer has a rule for the a11y rule id.
func Fixable(id string) bool {
	_, ok := rules[id]
	return ok
}

func imageAlt(el domain.JSXElement) string {
	src, ok := el.Attr("src")
	if !ok || !src.Literal || src.Value == "" {
		return "Image"
	}
	base := path.Base(strings.SplitN(src.Value, "?", 2)[0])
	if base == "." || base == "/" {
		return "Image"
	}
	return "Image: " + base
}

// Fixer applies attribute-injection fixes using a JSX element index.
type Fixer struct {
	parser domain.JSXParser
}

func New(parser domain.JSXParser) *Fixer {
	return &Fixer{parser: parser}
}

type insertion struct {
	at   int
	text string
}

// Fix patches code for the fixable a11y findings in violations. It never
// fails: anything it cannot patch is reported in Unfixed with a suggestion.
// Running Fix again on its own output yields no new Fixed entries.
func (f *Fixer) Fix(code string, violations domain.ViolationSet) *domain.AutoFixResult {
	result := &domain.AutoFixResult{
		Code:    code,
		Fixed:   []domain.FixEntry{},
		Unfixed: []domain.FixEntry{},
	}

	var (
		elements []domain.JSXElement
		parseErr error
		parsed   bool
		inserts  []insertion
	)

	seen := make(map[string]bool)
	for _, v := range violations.A11y {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true

		r, ok := rules[v.ID]
		if !ok {
			result.Unfixed = append(result.Unfixed, domain.FixEntry{
				Type:        v.ID,
				Description: v.Description,
				Suggestion:  firstNonEmpty(v.Help, v.Description),
			})
			continue
		}

		if !parsed {
			elements, parseErr = f.parser.Elements(code)
			parsed = true
		}
		if parseErr != nil {
			result.Unfixed = append(result.Unfixed, domain.FixEntry{
				Type:        v.ID,
				Description: v.Description,
				Suggestion:  fmt.Sprintf("source could not be parsed (%v); %s", parseErr, firstNonEmpty(v.Help, v.Description)),
			})
			continue
		}

		var lines []int
		for _, el := range elements {
			if el.Tag != r.tag || !r.needs(el) {
				continue
			}
			inserts = append(inserts, insertion{
				at:   el.InsertAt,
				text: fmt.Sprintf(` %s="%s"`, r.attr, r.value(el)),
			})
			lines = append(lines, el.Line)
		}

		count := len(lines)
		if count == 0 {
			result.Skipped = append(result.Skipped, domain.FixEntry{
				Type:        v.ID,
				Description: fmt.Sprintf("every <%s> already has %s", r.tag, r.attr),
			})
			continue
		}
		result.Fixed = append(result.Fixed, domain.FixEntry{
			Type:        v.ID,
			Description: fmt.Sprintf("added %s to %d <%s> element(s)", r.attr, count, r.tag),
			Elements:    count,
			Lines:       lines,
		})
	}

	result.Unfixed = append(result.Unfixed, manualFixes(violations)...)

	result.Code = splice(code, inserts)
	result.Diff = LineDiff(code, result.Code)
	result.Success = len(result.Unfixed) == 0
	result.SuccessRate = successRate(len(result.Fixed), len(result.Unfixed))
	return result
}

// splice applies insertions back to front so earlier offsets stay valid.
func splice(code string, inserts []insertion) string {
	if len(inserts) == 0 {
		return code
	}
	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	out := code
	for _, ins := range inserts {
		if ins.at < 0 || ins.at > len(out) {
			continue
		}
		out = out[:ins.at] + ins.text + out[ins.at:]
	}
	return out
}

func successRate(fixed, unfixed int) float64 {
	if fixed+unfixed == 0 {
		return 100
	}
	return float64(fixed) / float64(fixed+unfixed) * 100
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
