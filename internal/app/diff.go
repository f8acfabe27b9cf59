package app

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// lineDiff renders a line-oriented diff from the file on disk to the freshly
// generated text. Long unchanged runs are elided.
func lineDiff(path, onDisk, generated string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(onDisk, generated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s (on disk)\n+++ %s (generated)\n", path, path)
	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffInsert:
			writeLines(&sb, "+", chunk)
		case diffpatch.DiffDelete:
			writeLines(&sb, "-", chunk)
		case diffpatch.DiffEqual:
			writeEqual(&sb, chunk, i > 0, i < len(diffs)-1)
		}
	}
	return sb.String()
}

// writeEqual keeps the lines next to a preceding or following change.
func writeEqual(sb *strings.Builder, chunk []string, afterChange, beforeChange bool) {
	var head, tail []string
	if afterChange {
		head = chunk[:min(diffContext, len(chunk))]
		chunk = chunk[len(head):]
	}
	if beforeChange {
		tail = chunk[max(0, len(chunk)-diffContext):]
		chunk = chunk[:len(chunk)-len(tail)]
	}
	writeLines(sb, " ", head)
	if len(chunk) > 0 {
		fmt.Fprintf(sb, "@@ %d unchanged lines @@\n", len(chunk))
	}
	writeLines(sb, " ", tail)
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
