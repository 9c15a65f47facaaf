// Package frontmatter parses and formats the small YAML dialect used in the
// frontmatter of agent and command markdown files.
//
// The dialect covers flat key: value pairs, quoted strings, inline arrays and
// block scalars. It is deliberately permissive: Parse never fails, and a
// document whose frontmatter cannot be located is treated as having none.
package frontmatter

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// ErrMissingFrontmatter is returned by Validate when no frontmatter is found.
var ErrMissingFrontmatter = errors.New("missing frontmatter")

// Document is a parsed markdown document.
type Document struct {
	// Meta holds the frontmatter fields. It is empty, never nil, when
	// Present is false.
	Meta *Map

	// Body is the text following the frontmatter block, trimmed of
	// surrounding whitespace. Without frontmatter it is the full input.
	Body string

	// Present reports whether a frontmatter block was found and split off.
	Present bool
}

// Parse extracts the frontmatter fields and body from content.
// If no frontmatter is present, returns an empty Map and content unchanged.
func Parse(content string) (*Map, string) {
	doc := ParseDocument(content)
	return doc.Meta, doc.Body
}

// ParseDocument is like Parse but also reports whether frontmatter was found.
func ParseDocument(content string) Document {
	block, body, ok := split(content)
	if !ok {
		return Document{Meta: NewMap(), Body: content}
	}
	return Document{
		Meta:    parseBlock(block),
		Body:    strings.TrimSpace(body),
		Present: true,
	}
}

// split separates content into the raw frontmatter block and the body.
// The document must open with a line holding only the delimiter. The split
// stops after the second delimiter, so later "---" lines stay in the body.
func split(content string) (block, body string, ok bool) {
	if !opensWithDelimiter(content) {
		return "", "", false
	}
	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 || strings.TrimSpace(parts[0]) != "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

func opensWithDelimiter(content string) bool {
	first, _, _ := strings.Cut(content, "\n")
	return strings.TrimSuffix(first, "\r") == Delimiter
}

// Compose joins a serialized frontmatter block and a body with a blank line.
func Compose(meta *Map, body string) string {
	return Serialize(meta) + "\n\n" + body
}

// Validate checks that the frontmatter of content is well-formed standard
// YAML with a mapping at the top level. It is stricter than Parse and is
// meant for checking generated output, not for reading source files.
func Validate(content string) error {
	block, _, ok := split(content)
	if !ok {
		return ErrMissingFrontmatter
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(block), &node); err != nil {
		return errors.Wrap(err, "parsing frontmatter YAML")
	}

	// An empty block decodes to a zero node.
	if node.Kind == 0 {
		return nil
	}
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return errors.New("frontmatter is not a mapping")
	}
	return nil
}
