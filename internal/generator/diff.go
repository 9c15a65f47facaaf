package generator

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

// lineDiff renders a line-level diff of oldText to newText with "-", "+",
// and " " prefixes. Long unchanged runs collapse to a single "@@" line.
// Identical inputs produce "".
func lineDiff(oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&out, "-", ls)
		case diffmatchpatch.DiffInsert:
			writeLines(&out, "+", ls)
		case diffmatchpatch.DiffEqual:
			writeContext(&out, ls, i == 0, i == len(diffs)-1)
		}
	}
	return out.String()
}

func writeContext(out *strings.Builder, ls []string, first, last bool) {
	head, tail := diffContext, diffContext
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if len(ls) <= head+tail {
		writeLines(out, " ", ls)
		return
	}
	writeLines(out, " ", ls[:head])
	out.WriteString("@@\n")
	writeLines(out, " ", ls[len(ls)-tail:])
}

func writeLines(out *strings.Builder, prefix string, ls []string) {
	for _, l := range ls {
		out.WriteString(prefix)
		out.WriteString(l)
		out.WriteByte('\n')
	}
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
