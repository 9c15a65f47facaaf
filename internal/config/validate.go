package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ocgen/internal/errors"
)

// Validation failures. Each is wrapped in a FieldError naming the key.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidKey         = errors.New("name is not a plain frontmatter key")
	ErrInvalidLibName     = errors.New("plugin lib must be a bare file name")
	ErrDuplicate          = errors.New("duplicate entry")
)

// FieldError ties a validation failure to a config key and value.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate returns every problem found in cfg, or nil.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: fmt.Sprint(cfg.Version), Err: ErrUnsupportedVersion})
	}

	errs = append(errs, checkNames("primary_agents", cfg.PrimaryAgents, nil)...)
	errs = append(errs, checkNames("agent_tools", cfg.AgentTools, validKey)...)
	errs = append(errs, checkNames("plugin_libs", cfg.PluginLibs, validLibName)...)

	return errs
}

func checkNames(field string, names []string, check func(string) error) []error {
	var errs []error
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, &FieldError{Field: field, Err: ErrEmptyName})
			continue
		}
		if seen[name] {
			errs = append(errs, &FieldError{Field: field, Value: name, Err: ErrDuplicate})
			continue
		}
		seen[name] = true
		if check != nil {
			if err := check(name); err != nil {
				errs = append(errs, &FieldError{Field: field, Value: name, Err: err})
			}
		}
	}
	return errs
}

// validKey rejects names the frontmatter serializer would have to quote.
func validKey(name string) error {
	if strings.ContainsAny(name, ": \t\n\"'#") {
		return ErrInvalidKey
	}
	return nil
}

func validLibName(name string) error {
	if name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidLibName
	}
	return nil
}
