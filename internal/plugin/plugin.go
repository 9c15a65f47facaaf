// Package plugin holds the OpenCode plugin payloads that replace Claude Code
// hooks. The TypeScript sources are embedded verbatim and written as is.
package plugin

import (
	"embed"
	"path"
)

//go:embed templates/*.ts
var templateFS embed.FS

// Directory layout under .opencode.
const (
	Dir         = "plugin"
	LibDir      = "lib"
	ScoutDir    = "scout-block"
	IgnoreFile  = ".ckignore"
	PackageFile = "package.json"
)

// DefaultLibs are the hook library modules the templates require.
var DefaultLibs = []string{
	"ck-config-utils.cjs",
	"ck-paths.cjs",
	"colors.cjs",
	"privacy-checker.cjs",
	"scout-checker.cjs",
	"context-builder.cjs",
	"project-detector.cjs",
}

// Template is one generated plugin file.
type Template struct {
	Name    string
	Content []byte
}

// templateNames fixes emission order. There is no index.ts: OpenCode loads
// every .ts file in the plugin directory, and re-exporting them loads each
// plugin twice.
var templateNames = []string{
	"privacy-block.ts",
	"scout-block.ts",
	"context-injector.ts",
}

// Templates returns the plugin sources in emission order.
func Templates() []Template {
	out := make([]Template, 0, len(templateNames))
	for _, name := range templateNames {
		data, err := templateFS.ReadFile(path.Join("templates", name))
		if err != nil {
			// embedded at build time; a miss is a packaging bug
			panic(err)
		}
		out = append(out, Template{Name: name, Content: data})
	}
	return out
}

// Package is the .opencode/package.json that pulls in the plugin SDK.
type Package struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Dependencies map[string]string `json:"dependencies"`
}

// PackageJSON returns the manifest written next to the plugin directory.
func PackageJSON() Package {
	return Package{
		Name:        "@claudekit/opencode-plugins",
		Version:     "1.0.0",
		Description: "ClaudeKit hooks converted to OpenCode plugins",
		Dependencies: map[string]string{
			"@opencode-ai/plugin": ">=0.1.0",
		},
	}
}
