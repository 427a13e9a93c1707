package fix

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a line-level diff of before and after. Each hunk is
// headed by the line number in before where the change starts. Empty when
// the inputs are equal.
func LineDiff(before, after string) string {
	if before == after {
		return ""
	}
	// a missing final newline must not make the last line differ
	if !strings.HasSuffix(before, "\n") && !strings.HasSuffix(after, "\n") {
		before += "\n"
		after += "\n"
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- original\n+++ fixed\n")
	line, inHunk := 1, false
	for _, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += len(chunk)
			inHunk = false
			continue
		}
		if !inHunk {
			fmt.Fprintf(&sb, "@@ line %d @@\n", line)
			inHunk = true
		}
		prefix := "+"
		if d.Type == diffmatchpatch.DiffDelete {
			prefix = "-"
			line += len(chunk)
		}
		for _, l := range chunk {
			sb.WriteString(prefix + l + "\n")
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}
