// Package sarif converts validator results into SARIF 2.1.0 logs, the
// format GitHub code scanning and most CI annotators ingest.
package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/tokens"
)

const (
	specVersion = "2.1.0"
	schemaURL   = "https://json.schemastore.org/sarif-2.1.0.json"
	toolName    = "uikraft"
	toolURI     = "https://github.com/openkraft/uikraft"
)

// Log is the top-level SARIF object.
type Log struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool                     Tool                    `json:"tool"`
	Results                  []Result                `json:"results"`
	VersionControlProvenance []VersionControlDetails `json:"versionControlProvenance,omitempty"`
	Properties               map[string]any          `json:"properties,omitempty"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	InformationURI string `json:"informationUri"`
	Rules          []Rule `json:"rules"`
}

type Rule struct {
	ID               string          `json:"id"`
	ShortDescription Message         `json:"shortDescription"`
	FullDescription  *Message        `json:"fullDescription,omitempty"`
	HelpURI          string          `json:"helpUri,omitempty"`
	Properties       *RuleProperties `json:"properties,omitempty"`
}

type RuleProperties struct {
	Tags []string `json:"tags,omitempty"`
}

type Result struct {
	RuleID     string         `json:"ruleId"`
	RuleIndex  int            `json:"ruleIndex"`
	Level      string         `json:"level"`
	Message    Message        `json:"message"`
	Locations  []Location     `json:"locations"`
	Properties map[string]any `json:"properties,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []LogicalLocation `json:"logicalLocations,omitempty"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	Snippet Message `json:"snippet"`
}

// LogicalLocation names the rendered element a finding is about.
type LogicalLocation struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Kind               string `json:"kind"`
}

type VersionControlDetails struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
}

// Options describe where the findings came from.
type Options struct {
	// ArtifactURI is the component file, relative to the repository root
	// when possible.
	ArtifactURI   string
	ToolVersion   string
	RepositoryURI string
	RevisionID    string
	RunID         string
}

// builder accumulates rules and results for one run.
type builder struct {
	run     *Run
	indices map[string]int
	opts    Options
}

// Export converts results into a single-run SARIF log. Results of any
// validator may be mixed; nil results are ignored.
func Export(results []*domain.ValidationResult, opts Options) *Log {
	if opts.ToolVersion == "" {
		opts.ToolVersion = "dev"
	}
	log := &Log{
		Schema:  schemaURL,
		Version: specVersion,
		Runs: []Run{{
			Tool: Tool{Driver: Driver{
				Name:           toolName,
				Version:        opts.ToolVersion,
				InformationURI: toolURI,
				Rules:          []Rule{},
			}},
			Results: []Result{},
		}},
	}
	run := &log.Runs[0]
	if opts.RepositoryURI != "" {
		run.VersionControlProvenance = []VersionControlDetails{{RepositoryURI: opts.RepositoryURI, RevisionID: opts.RevisionID}}
	}
	if opts.RunID != "" {
		run.Properties = map[string]any{"runId": opts.RunID}
	}

	b := &builder{run: run, indices: map[string]int{}, opts: opts}
	for _, r := range results {
		if r == nil {
			continue
		}
		switch d := r.Details.(type) {
		case *domain.A11yDetails:
			b.a11y(d)
		case *domain.KeyboardDetails:
			b.keyboard(d)
		case *domain.FocusDetails:
			b.focus(d)
		case *domain.ContrastDetails:
			b.contrast(d)
		case *tokens.Report:
			b.tokens(d)
		}
	}
	return log
}

func (b *builder) rule(r Rule) int {
	if idx, ok := b.indices[r.ID]; ok {
		return idx
	}
	idx := len(b.run.Tool.Driver.Rules)
	b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, r)
	b.indices[r.ID] = idx
	return idx
}

func (b *builder) add(ruleIdx int, level, text, element, snippet string, props map[string]any) {
	loc := Location{PhysicalLocation: PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: b.opts.ArtifactURI}}}
	if snippet != "" {
		loc.PhysicalLocation.Region = &Region{Snippet: Message{Text: snippet}}
	}
	if element != "" {
		loc.LogicalLocations = []LogicalLocation{{FullyQualifiedName: element, Kind: "element"}}
	}
	b.run.Results = append(b.run.Results, Result{
		RuleID:     b.run.Tool.Driver.Rules[ruleIdx].ID,
		RuleIndex:  ruleIdx,
		Level:      level,
		Message:    Message{Text: text},
		Locations:  []Location{loc},
		Properties: props,
	})
}

func (b *builder) a11y(d *domain.A11yDetails) {
	for _, v := range d.Violations {
		rule := Rule{
			ID:               v.ID,
			ShortDescription: Message{Text: v.Help},
			HelpURI:          v.HelpURL,
		}
		if v.Description != "" {
			rule.FullDescription = &Message{Text: v.Description}
		}
		if tags := wcagTags(v.Tags); len(tags) > 0 {
			rule.Properties = &RuleProperties{Tags: tags}
		}
		idx := b.rule(rule)

		var props map[string]any
		if v.Variant != "" && v.Variant != "default" {
			props = map[string]any{"variant": v.Variant}
		}
		if len(v.Nodes) == 0 {
			b.add(idx, Level(v.Impact), v.Help, "", "", props)
			continue
		}
		for _, n := range v.Nodes {
			impact := v.Impact
			if n.Impact != "" {
				impact = domain.Severity(n.Impact)
			}
			b.add(idx, Level(impact), v.Help, strings.Join(n.Target, " "), n.HTML, props)
		}
	}
}

func (b *builder) keyboard(d *domain.KeyboardDetails) {
	for _, is := range d.Issues {
		idx := b.rule(Rule{ID: "keyboard/" + is.Type, ShortDescription: Message{Text: strings.ReplaceAll(is.Type, "_", " ")}})
		props := map[string]any{"test": is.Test}
		if is.Expected != "" {
			props["expected"] = is.Expected
		}
		if is.Actual != "" {
			props["actual"] = is.Actual
		}
		b.add(idx, Level(is.Severity), is.Message, "", "", props)
	}
}

func (b *builder) focus(d *domain.FocusDetails) {
	for _, is := range d.Issues {
		idx := b.rule(Rule{ID: "focus/" + is.Type, ShortDescription: Message{Text: strings.ReplaceAll(is.Type, "_", " ")}})
		b.add(idx, Level(is.Severity), is.Message, is.Element, "", nil)
	}
}

func (b *builder) contrast(d *domain.ContrastDetails) {
	for _, v := range d.Violations {
		idx := b.rule(Rule{
			ID:               "contrast/" + v.Kind,
			ShortDescription: Message{Text: "insufficient " + strings.ReplaceAll(v.Kind, "_", " ") + " contrast"},
			Properties:       &RuleProperties{Tags: []string{"wcag143", "wcag1411"}},
		})
		text := fmt.Sprintf("%s on %s is %.2f:1 in %s state, needs %.1f:1", v.Foreground, v.Background, v.Ratio, v.State, v.Required)
		props := map[string]any{"state": v.State, "ratio": v.Ratio, "required": v.Required}
		if len(v.Suggestions) > 0 {
			s := v.Suggestions[0]
			props["suggestion"] = fmt.Sprintf("%s on %s (%.2f:1)", s.Foreground, s.Background, s.Ratio)
		}
		b.add(idx, Level(v.Severity), text, v.Element, "", props)
	}
}

func (b *builder) tokens(r *tokens.Report) {
	for _, v := range r.Violations {
		idx := b.rule(Rule{ID: "tokens/" + v.Category, ShortDescription: Message{Text: v.Category + " value outside the design tokens"}})
		text := fmt.Sprintf("%s: %s does not match a design token", v.Property, v.Actual)
		if v.Expected != "" {
			text += ", nearest is " + v.Expected
		}
		b.add(idx, "warning", text, "", "", nil)
	}
}

// Level maps a severity to a SARIF result level.
func Level(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical, domain.SeveritySerious:
		return "error"
	case domain.SeverityModerate:
		return "warning"
	case domain.SeverityMinor:
		return "note"
	default:
		return "warning"
	}
}

func wcagTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if strings.HasPrefix(t, "wcag") {
			out = append(out, t)
		}
	}
	return out
}

// Write encodes log as indented JSON.
func Write(w io.Writer, log *Log) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encoding sarif: %w", err)
	}
	return nil
}

// WriteFile writes log to path, creating parent directories.
func WriteFile(path string, log *Log) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, log); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
