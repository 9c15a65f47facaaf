// Package config loads ocgen's own settings with Viper.
//
// # Configuration File
//
// ocgen looks for ocgen.yaml (or .yml/.json/.toml) in the current directory
// and then in $XDG_CONFIG_HOME/ocgen. Every key is optional:
//
//	version: 1
//	primary_agents:
//	  - brainstormer
//	agent_tools:
//	  - read
//	  - write
//	  - edit
//	  - bash
//	  - glob
//	  - grep
//	plugin_libs:
//	  - ck-config-utils.cjs
//	  - ck-paths.cjs
//	backup: true
//
// Environment variables prefixed with OCGEN_ override file values, with
// list values separated by commas:
//
//	OCGEN_PRIMARY_AGENTS=brainstormer,planner ocgen generate
//
// # Loading
//
//	config.Init()
//	cfg, err := config.Load("")
//	if errors.Is(err, errors.ErrInvalidConfig) {
//	    // report the validation failure
//	}
//
// [Load] validates the result; [Validate] can also be called directly.
package config
