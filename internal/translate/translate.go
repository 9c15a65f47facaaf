// Package translate renders parsed frontmatter in other data formats.
package translate

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatTOML}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// Encode renders meta in f. YAML and JSON keep key order; TOML sorts keys
// and leaves out null fields, which it cannot represent.
func Encode(meta *frontmatter.Map, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		out, err := yaml.Marshal(meta)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling yaml")
		}
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling json")
		}
		return append(out, '\n'), nil
	case FormatTOML:
		out, err := toml.Marshal(dropNulls(meta.ToAny()))
		if err != nil {
			return nil, errors.Wrap(err, "marshaling toml")
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
}

func dropNulls(m map[string]any) map[string]any {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			dropNulls(t)
		}
	}
	return m
}
