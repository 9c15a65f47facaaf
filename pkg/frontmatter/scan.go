package frontmatter

import "strings"

// blockIndicators introduce a block scalar. All four are folded the same
// way: continuation lines are trimmed and joined with single spaces.
var blockIndicators = map[string]bool{
	">-": true,
	">":  true,
	"|-": true,
	"|":  true,
}

// cursor walks the lines of a frontmatter block. Block scalars consume a
// variable number of lines, so scanning needs an index rather than a range.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(block string) *cursor {
	return &cursor{lines: strings.Split(block, "\n")}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.lines)
}

func (c *cursor) peek() string {
	return c.lines[c.pos]
}

func (c *cursor) next() string {
	line := c.lines[c.pos]
	c.pos++
	return line
}

// fold consumes the indented and blank lines that follow a block scalar
// indicator and returns them joined by spaces. It stops at the first
// non-blank line without leading whitespace, leaving it unconsumed.
// Reaching the end of input simply ends the block.
func (c *cursor) fold() string {
	var parts []string
	for !c.done() {
		line := c.peek()
		switch {
		case strings.TrimSpace(line) == "":
			c.pos++
		case line[0] == ' ' || line[0] == '\t':
			parts = append(parts, strings.TrimSpace(line))
			c.pos++
		default:
			return strings.Join(parts, " ")
		}
	}
	return strings.Join(parts, " ")
}

// parseBlock reads the raw text between the delimiters. Lines without a
// colon are ignored and unrecognized values are kept verbatim.
func parseBlock(block string) *Map {
	m := NewMap()
	c := newCursor(strings.TrimSpace(block))

	for !c.done() {
		line := strings.TrimSpace(c.next())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if blockIndicators[value] {
			m.Set(key, c.fold())
			continue
		}
		m.Set(key, parseValue(value))
	}

	return m
}

// parseValue interprets a single-line value: one layer of matching quotes is
// removed, a bracketed value becomes a list, anything else is returned as is.
func parseValue(value string) any {
	if len(value) < 2 {
		return value
	}

	first, last := value[0], value[len(value)-1]
	switch {
	case first == '"' && last == '"':
		return unescapeDouble(value[1 : len(value)-1])
	case first == '\'' && last == '\'':
		return value[1 : len(value)-1]
	case first == '[' && last == ']':
		return parseList(value[1 : len(value)-1])
	}
	return value
}

func parseList(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return []string{}
	}

	items := strings.Split(inner, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, unquote(strings.TrimSpace(item)))
	}
	return out
}

// unquote strips at most one layer of matching single or double quotes.
// Double-quoted items are unescaped.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		switch {
		case first == '"' && last == '"':
			return unescapeDouble(s[1 : len(s)-1])
		case first == '\'' && last == '\'':
			return s[1 : len(s)-1]
		}
	}
	return s
}

// unescapeDouble reverses the escaping Serialize applies inside double
// quotes. Only \\ and \" are recognized; other backslashes are literal.
func unescapeDouble(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
