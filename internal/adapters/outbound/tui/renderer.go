package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/uikraft/internal/domain"
	"github.com/openkraft/uikraft/internal/domain/color"
	"github.com/openkraft/uikraft/internal/domain/tokens"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderResult formats one validator result.
func RenderResult(r *domain.ValidationResult) string {
	var b strings.Builder
	renderResult(&b, r)
	b.WriteString("\n")
	return b.String()
}

func renderResult(b *strings.Builder, r *domain.ValidationResult) {
	verdict := passStyle.Render("PASS")
	if !r.Valid {
		verdict = failStyle.Render("FAIL")
	}
	fmt.Fprintf(b, "  %s %s", catNameStyle.Render(padRight(r.Validator, 10)), verdict)
	if summary := summarize(r.Details); summary != "" {
		b.WriteString("  " + dimStyle.Render(summary))
	}
	b.WriteString("\n")

	if report, ok := r.Details.(*tokens.Report); ok {
		for _, c := range report.Categories {
			scoreText := lipgloss.NewStyle().Foreground(scoreColor(int(c.Score))).Render(fmt.Sprintf("%5.1f%%", c.Score))
			fmt.Fprintf(b, "    %s %s %s\n", padRight(c.Name, 12), coloredBar(int(c.Score), 20), scoreText)
		}
	}

	for _, e := range r.Errors {
		fmt.Fprintf(b, "    %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(e))
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
	}
	for _, n := range notes(r.Details) {
		fmt.Fprintf(b, "    %s %s\n", infoTagStyle.Render("info "), faintStyle.Render(n))
	}
}

// summarize gives the one-line context shown next to the verdict.
func summarize(details any) string {
	switch d := details.(type) {
	case *domain.A11yDetails:
		return fmt.Sprintf("%d violation(s) across %d variant(s)", len(d.Violations), len(d.Variants))
	case *domain.KeyboardDetails:
		return fmt.Sprintf("%s · %d focusable · tests: %s", d.ComponentType, d.FocusableCount, strings.Join(d.TestsRun, ", "))
	case *domain.FocusDetails:
		return fmt.Sprintf("%d element(s) checked", len(d.Checked))
	case *domain.ContrastDetails:
		return fmt.Sprintf("%d sample(s) checked", d.Checked)
	case *tokens.Report:
		return fmt.Sprintf("%.1f%% adherence over %d check(s) · %s styles", d.Score, d.Checks, d.StyleSource)
	}
	return ""
}

func notes(details any) []string {
	switch d := details.(type) {
	case *domain.KeyboardDetails:
		return d.Notes
	case *domain.FocusDetails:
		if d.Note != "" {
			return []string{d.Note}
		}
	case *domain.ContrastDetails:
		if d.Note != "" {
			return []string{d.Note}
		}
	case *tokens.Report:
		if len(d.Skipped) > 0 {
			return []string{fmt.Sprintf("%d declaration(s) skipped: %s", len(d.Skipped), strings.Join(d.Skipped, ", "))}
		}
	}
	return nil
}

// RenderSuite formats a full run of every validator.
func RenderSuite(report *domain.SuiteReport) string {
	var b strings.Builder

	title := headerStyle.Render("uikraft")
	subtitle := dimStyle.Render("Component Conformance")
	passed := 0
	for _, r := range report.Results {
		if r.Valid {
			passed++
		}
	}
	total := len(report.Results) + len(report.Failures)
	summaryStyle := passStyle
	if !report.Passed() {
		summaryStyle = failStyle
	}
	summary := summaryStyle.Bold(true).Render(fmt.Sprintf("%d / %d passed", passed, total))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + report.Component + "  " + summary))
	b.WriteString("\n\n")

	meta := "run " + report.RunID
	if report.CommitHash != "" {
		meta += " · " + shortHash(report.CommitHash)
	}
	b.WriteString("  " + faintStyle.Render(meta) + "\n\n")

	for _, r := range report.Results {
		renderResult(&b, r)
		b.WriteString("\n")
	}

	if len(report.Failures) > 0 {
		b.WriteString("  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Could not run") + "\n\n")
		names := make([]string, 0, len(report.Failures))
		for name := range report.Failures {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "    %s %s %s\n", skipStyle.Render("○"), catNameStyle.Render(padRight(name, 10)), dimStyle.Render(report.Failures[name]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func lineList(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l)
	}
	if len(parts) == 1 {
		return "line " + parts[0]
	}
	return "lines " + strings.Join(parts, ", ")
}

// RenderFix formats the auto-fixer outcome.
func RenderFix(res *domain.AutoFixResult) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Auto-fix") + "  ")
	rate := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(int(res.SuccessRate))).Render(fmt.Sprintf("%.0f%%", res.SuccessRate))
	b.WriteString(rate + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, f := range res.Fixed {
		desc := f.Description
		if len(f.Lines) > 0 {
			desc += " at " + lineList(f.Lines)
		}
		fmt.Fprintf(&b, "    %s %s %s\n", passStyle.Render("✓"), padRight(f.Type, 28), dimStyle.Render(desc))
	}
	for _, f := range res.Skipped {
		fmt.Fprintf(&b, "    %s %s %s\n", skipStyle.Render("○"), skipStyle.Render(padRight(f.Type, 28)), skipStyle.Render(f.Description))
	}
	for _, f := range res.Unfixed {
		fmt.Fprintf(&b, "    %s %s %s\n", failStyle.Render("✗"), padRight(f.Type, 28), dimStyle.Render(f.Description))
		if f.Suggestion != "" {
			fmt.Fprintf(&b, "      %s\n", faintStyle.Render("→ "+f.Suggestion))
		}
	}
	if len(res.Fixed)+len(res.Skipped)+len(res.Unfixed) == 0 {
		b.WriteString("    " + dimStyle.Render("Nothing to fix.") + "\n")
	}

	if res.Diff != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(res.Diff, "\n"), "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				b.WriteString("  " + titleStyle.Render(line) + "\n")
			case strings.HasPrefix(line, "+"):
				b.WriteString("  " + passStyle.Render(line) + "\n")
			case strings.HasPrefix(line, "-"):
				b.WriteString("  " + failStyle.Render(line) + "\n")
			default:
				b.WriteString("  " + faintStyle.Render(line) + "\n")
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderVerdict formats a quick color pair check.
func RenderVerdict(v color.Verdict) string {
	var b strings.Builder
	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(v.Foreground.Hex())).
		Background(lipgloss.Color(v.Background.Hex())).
		Padding(0, 2).
		Render("Aa")

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s on %s  %s\n\n", swatch, v.Foreground.Hex(), v.Background.Hex(),
		lipgloss.NewStyle().Bold(true).Foreground(ratioColor(v)).Render(fmt.Sprintf("%.2f:1", v.Ratio)))

	kinds := []struct {
		kind  color.Kind
		label string
	}{
		{color.NormalText, "normal text"},
		{color.LargeText, "large text"},
		{color.UIComponent, "ui component"},
	}
	for _, k := range kinds {
		fmt.Fprintf(&b, "    %s  AA %s  AAA %s\n", padRight(k.label, 14), mark(v.AA[k.kind]), mark(v.AAA[k.kind]))
	}

	if len(v.Suggestions) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Suggestions") + "\n")
		for _, s := range v.Suggestions {
			fmt.Fprintf(&b, "    %s %s on %s  %s\n", padRight(s.Strategy, 20), s.Foreground.Hex(), s.Background.Hex(), dimStyle.Render(fmt.Sprintf("%.2f:1", s.Ratio)))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func ratioColor(v color.Verdict) lipgloss.Color {
	switch {
	case v.AAA[color.NormalText]:
		return success
	case v.AA[color.NormalText]:
		return lipgloss.Color("#A3E635") // lime
	case v.AA[color.LargeText]:
		return warning
	default:
		return danger
	}
}

func mark(ok bool) string {
	if ok {
		return passStyle.Render("✓")
	}
	return failStyle.Render("✗")
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	c := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 90:
		return success
	case score >= 75:
		return lipgloss.Color("#A3E635") // lime
	case score >= 50:
		return warning
	default:
		return danger
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats suite run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		var marks strings.Builder
		for _, name := range domain.ValidatorNames {
			ok, ran := e.Validators[name]
			switch {
			case !ran:
				marks.WriteString(skipStyle.Render("·"))
			case ok:
				marks.WriteString(passStyle.Render("●"))
			default:
				marks.WriteString(failStyle.Render("●"))
			}
		}

		verdict := passStyle.Render("pass")
		if !e.Passed {
			verdict = failStyle.Render("fail")
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s  %s\n",
			dimStyle.Render(day),
			faintStyle.Render(e.RunID),
			faintStyle.Render(hash),
			marks.String(),
			verdict,
			e.Component,
		)
	}

	return b.String()
}
