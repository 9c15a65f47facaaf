package frontmatter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DescriptionKey is the one field with its own formatting rules. Source
// descriptions are often long prose with embedded examples, which is
// unsuitable for a one-line frontmatter value.
const DescriptionKey = "description"

// Description limits, in runes.
const (
	MaxDescriptionLength = 200
	truncatedLength      = MaxDescriptionLength - len(ellipsis)
	ellipsis             = "..."
)

// Markers at which a description is cut.
var descriptionCutMarkers = []string{"<example>", "Examples:"}

var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ")

// plainIndicators are leading characters that make a bare value read back
// as something other than a string.
const plainIndicators = "[]{}>|&*!%@`#"

// Serialize formats m as a frontmatter block, one line per key in insertion
// order, opened and closed by a delimiter line. The result has no trailing
// newline.
//
// A nested *Map is written as an indented block one level deep. Values nested
// any deeper are not supported and are omitted.
func Serialize(m *Map) string {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')

	for _, key := range m.Keys() {
		value, _ := m.Get(key)

		if nested, ok := value.(*Map); ok {
			fmt.Fprintf(&b, "%s:\n", key)
			for _, sub := range nested.Keys() {
				subValue, _ := nested.Get(sub)
				if formatted, ok := formatValue(subValue); ok {
					fmt.Fprintf(&b, "  %s: %s\n", sub, formatted)
				}
			}
			continue
		}

		if s, ok := value.(string); ok && key == DescriptionKey {
			fmt.Fprintf(&b, "%s: %s\n", key, formatDescription(s))
			continue
		}

		if formatted, ok := formatValue(value); ok {
			fmt.Fprintf(&b, "%s: %s\n", key, formatted)
		}
	}

	b.WriteString(Delimiter)
	return b.String()
}

// formatValue renders a single value. It returns false for values that have
// no single-line form, which is only a *Map.
func formatValue(v any) (string, bool) {
	switch t := v.(type) {
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	case string:
		return formatString(t), true
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return formatList(items), true
	case []any:
		return formatList(t), true
	case *Map:
		return "", false
	case nil:
		return "null", true
	default:
		return fmt.Sprint(t), true
	}
}

// formatList renders items inline, skipping those that format to nothing.
func formatList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		formatted, ok := formatValue(item)
		if !ok || formatted == "" {
			continue
		}
		parts = append(parts, formatted)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatString(s string) string {
	if needsQuotes(s) {
		return `"` + doubleQuoteEscaper.Replace(s) + `"`
	}
	return s
}

// needsQuotes reports whether s, written bare, would not parse back as s.
func needsQuotes(s string) bool {
	switch {
	case strings.ContainsAny(s, "\n\":' "):
		return true
	case blockIndicators[s]:
		return true
	case s != "" && strings.IndexByte(plainIndicators, s[0]) >= 0:
		return true
	}
	return false
}

// formatDescription flattens a description to one line, cuts it at the
// first example marker, and caps its length.
func formatDescription(s string) string {
	desc := strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	for _, marker := range descriptionCutMarkers {
		if before, _, found := strings.Cut(desc, marker); found {
			desc = strings.TrimSpace(before)
		}
	}
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		desc = string([]rune(desc)[:truncatedLength]) + ellipsis
	}
	return `"` + doubleQuoteEscaper.Replace(desc) + `"`
}
