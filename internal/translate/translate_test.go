package translate

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

func sample() *frontmatter.Map {
	meta := frontmatter.NewMap()
	meta.Set("name", "planner")
	meta.Set("description", "Plans the work")
	meta.Set("empty", nil)
	meta.Set("tags", []string{"a", "b"})
	meta.Set("enabled", true)
	return meta
}

func TestEncode(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatYAML, "name: planner\ndescription: Plans the work\nempty: null\ntags:\n    - a\n    - b\nenabled: true\n"},
		{FormatJSON, "{\n  \"name\": \"planner\",\n  \"description\": \"Plans the work\",\n  \"empty\": null,\n  \"tags\": [\n    \"a\",\n    \"b\"\n  ],\n  \"enabled\": true\n}\n"},
		{FormatTOML, "description = 'Plans the work'\nenabled = true\nname = 'planner'\ntags = ['a', 'b']\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Encode(sample(), tt.format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestEncode_OutputsDecode(t *testing.T) {
	meta := frontmatter.NewMap()
	meta.Set("description", "A")
	tools := frontmatter.NewMap()
	tools.Set("read", true)
	meta.Set("tools", tools)

	y, err := Encode(meta, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(y, &fromYAML); err != nil {
		t.Fatalf("yaml output does not decode: %v", err)
	}

	tm, err := Encode(meta, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	var fromTOML map[string]any
	if err := toml.Unmarshal(tm, &fromTOML); err != nil {
		t.Fatalf("toml output does not decode: %v", err)
	}

	if fromTOML["tools"].(map[string]any)["read"] != true || fromYAML["tools"].(map[string]any)["read"] != true {
		t.Errorf("nested map lost: yaml %v, toml %v", fromYAML, fromTOML)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Encode(sample(), "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(xml) error = %v, want ErrUnknownFormat", err)
	}
}
