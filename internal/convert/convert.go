// Package convert maps Claude Code agent and command frontmatter onto the
// OpenCode shapes.
//
// The functions here are pure: they take parsed frontmatter and a body and
// return new frontmatter and body. Reading and writing files is the
// generator's job.
package convert

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/thoreinstein/ocgen/pkg/fileutil"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

// Frontmatter keys read from or written to converted files.
const (
	KeyDescription  = frontmatter.DescriptionKey
	KeyMode         = "mode"
	KeyTools        = "tools"
	KeyAgent        = "agent"
	KeyArgumentHint = "argument-hint"
)

// Agent modes.
const (
	ModePrimary  = "primary"
	ModeSubagent = "subagent"
)

const (
	claudePrefix   = ".claude/"
	opencodePrefix = ".opencode/"
)

// AgentOptions controls agent conversion.
type AgentOptions struct {
	// PrimaryAgents get mode "primary"; every other agent is a subagent.
	PrimaryAgents []string
	// Tools are granted to every agent, in order.
	Tools []string
}

// DefaultAgentOptions returns the stock options.
func DefaultAgentOptions() AgentOptions {
	return AgentOptions{
		PrimaryAgents: []string{"brainstormer"},
		Tools:         []string{"read", "write", "edit", "bash", "glob", "grep"},
	}
}

// Agent converts agent frontmatter. The result carries description, mode,
// and tools in that order and never a model: OpenCode agents inherit it
// from opencode.json.
func Agent(meta *frontmatter.Map, body, name string, opts AgentOptions) (*frontmatter.Map, string) {
	out := frontmatter.NewMap()
	out.Set(KeyDescription, descriptionOr(meta, "Agent: "+name))

	mode := ModeSubagent
	if slices.Contains(opts.PrimaryAgents, name) {
		mode = ModePrimary
	}
	out.Set(KeyMode, mode)

	tools := frontmatter.NewMap()
	for _, tool := range opts.Tools {
		tools.Set(tool, true)
	}
	out.Set(KeyTools, tools)

	return out, RewritePaths(body)
}

// Command converts command frontmatter. A non-empty argument-hint is
// appended to the description as " - Args: <hint>" unless the description
// already contains "[".
func Command(meta *frontmatter.Map, body, name string) (*frontmatter.Map, string) {
	desc := descriptionOr(meta, "Command: "+name)
	if hint, ok := hintText(meta); ok {
		if s, isString := desc.(string); isString && !strings.Contains(s, "[") {
			desc = s + " - Args: " + hint
		}
	}

	out := frontmatter.NewMap()
	out.Set(KeyDescription, desc)
	if agent, ok := meta.Get(KeyAgent); ok {
		out.Set(KeyAgent, agent)
	}

	return out, RewritePaths(body)
}

// descriptionOr returns the source description when the key is present,
// even if empty, and fallback otherwise.
func descriptionOr(meta *frontmatter.Map, fallback string) any {
	if v, ok := meta.Get(KeyDescription); ok {
		return v
	}
	return fallback
}

// hintText renders argument-hint for the description suffix. Empty values
// and false count as absent.
func hintText(meta *frontmatter.Map) (string, bool) {
	v, ok := meta.Get(KeyArgumentHint)
	if !ok || v == nil {
		return "", false
	}
	switch h := v.(type) {
	case string:
		return h, h != ""
	case []string:
		return "[" + strings.Join(h, ", ") + "]", len(h) > 0
	case bool:
		return "true", h
	default:
		return fmt.Sprint(h), true
	}
}

// CommandName flattens a slash-separated path relative to the commands
// directory into a command name: "bootstrap/auto/fast.md" becomes
// "bootstrap-auto-fast".
func CommandName(relPath string) string {
	rel := strings.TrimSuffix(path.Clean(relPath), path.Ext(relPath))
	return strings.ReplaceAll(rel, "/", "-")
}

// RewritePaths replaces every ".claude/" with ".opencode/".
func RewritePaths(s string) string {
	return strings.ReplaceAll(s, claudePrefix, opencodePrefix)
}

// RewriteTransform returns a copy transform that rewrites paths in files
// whose extension is in exts and passes everything else through. With no
// exts every file is rewritten.
func RewriteTransform(exts ...string) fileutil.Transform {
	from, to := []byte(claudePrefix), []byte(opencodePrefix)
	return func(rel string, data []byte) []byte {
		if len(exts) > 0 && !slices.Contains(exts, path.Ext(rel)) {
			return data
		}
		return bytes.ReplaceAll(data, from, to)
	}
}
