package config

import (
	"os"
	"slices"

	"github.com/spf13/viper"

	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/paths"
	"github.com/thoreinstein/ocgen/internal/plugin"
)

// FileName is the config file base name, without extension.
const FileName = "ocgen"

// CurrentVersion is the only config version this build understands.
const CurrentVersion = 1

// Config holds the knobs that shape generated output.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// PrimaryAgents are agent names emitted with mode "primary".
	PrimaryAgents []string `mapstructure:"primary_agents" yaml:"primary_agents"`

	// AgentTools become the agent tools map, each set to true.
	AgentTools []string `mapstructure:"agent_tools" yaml:"agent_tools"`

	// PluginLibs are the hook library modules copied into .opencode/plugin/lib.
	PluginLibs []string `mapstructure:"plugin_libs" yaml:"plugin_libs"`

	// Backup copies .opencode aside before a forced run.
	Backup bool `mapstructure:"backup" yaml:"backup"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:       CurrentVersion,
		PrimaryAgents: []string{"brainstormer"},
		AgentTools:    []string{"read", "write", "edit", "bash", "glob", "grep"},
		PluginLibs:    slices.Clone(plugin.DefaultLibs),
		Backup:        true,
	}
}

// Init resets Viper and registers search paths, env binding, and defaults.
// Call it once at startup before Load.
func Init() {
	viper.Reset()

	// No SetConfigType: with a type set Viper also matches an extensionless
	// "ocgen" file, which is usually the binary itself.
	viper.SetConfigName(FileName)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("OCGEN")
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("primary_agents", d.PrimaryAgents)
	viper.SetDefault("agent_tools", d.AgentTools)
	viper.SetDefault("plugin_libs", d.PluginLibs)
	viper.SetDefault("backup", d.Backup)
}

// Load reads the configuration. An explicit path must exist; with an empty
// path a missing file falls back to defaults. The result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// defaults only
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.UnmarshalExact(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Used returns the config file Viper loaded, or "" when running on defaults.
func Used() string {
	return viper.ConfigFileUsed()
}
