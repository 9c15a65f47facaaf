package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoreinstein/ocgen/internal/errors"
)

func TestValidate_Default(t *testing.T) {
	assert.Empty(t, Validate(Default()))
}

func TestValidate_Nil(t *testing.T) {
	assert.Len(t, Validate(nil), 1)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
		field  string
	}{
		{"version zero", func(c *Config) { c.Version = 0 }, ErrUnsupportedVersion, "version"},
		{"blank tool", func(c *Config) { c.AgentTools = append(c.AgentTools, "  ") }, ErrEmptyName, "agent_tools"},
		{"tool with space", func(c *Config) { c.AgentTools = []string{"web fetch"} }, ErrInvalidKey, "agent_tools"},
		{"duplicate primary", func(c *Config) { c.PrimaryAgents = []string{"a", "a"} }, ErrDuplicate, "primary_agents"},
		{"lib in subdir", func(c *Config) { c.PluginLibs = []string{"lib/colors.cjs"} }, ErrInvalidLibName, "plugin_libs"},
		{"lib dot dot", func(c *Config) { c.PluginLibs = []string{".."} }, ErrInvalidLibName, "plugin_libs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := Validate(cfg)
			if !assert.Len(t, errs, 1) {
				return
			}
			assert.True(t, errors.Is(errs[0], tt.want), "got %v", errs[0])

			var fe *FieldError
			if assert.True(t, errors.As(errs[0], &fe)) {
				assert.Equal(t, tt.field, fe.Field)
			}
		})
	}
}

func TestValidate_EmptyListsAllowed(t *testing.T) {
	cfg := Default()
	cfg.PrimaryAgents = nil
	cfg.PluginLibs = nil
	assert.Empty(t, Validate(cfg))
}
