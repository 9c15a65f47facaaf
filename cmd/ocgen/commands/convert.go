package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/convert"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

// Source kinds accepted by convert.
const (
	kindAgent   = "agent"
	kindCommand = "command"
)

var convertName string

func init() {
	convertCmd.Flags().StringVar(&convertName, "name", "",
		"name used for defaults and primary-agent lookup (default: file name)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert agent|command FILE",
	Short: "Print the OpenCode version of a single agent or command",
	Long: `Convert one Claude Code agent or command file and print the result.
Nothing is written; redirect the output to keep it.`,
	Example: `  ocgen convert agent .claude/agents/planner.md
  ocgen convert command .claude/commands/git/cm.md --name git-cm`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{kindAgent, kindCommand},
	RunE: func(c *cobra.Command, args []string) error {
		out, err := convertFile(args[0], args[1], convertName, loadedConfig)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), out)
		return nil
	},
}

// convertFile converts the file at path as kind and returns the new file
// content.
func convertFile(kind, path, name string, cfg *config.Config) (string, error) {
	if kind != kindAgent && kind != kindCommand {
		return "", errors.NewUserError(errors.Newf("unknown kind %q", kind), "use 'agent' or 'command'")
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", errors.NewUserError(err, "check the file path")
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	meta, body := frontmatter.Parse(string(data))
	switch kind {
	case kindAgent:
		opts := convert.AgentOptions{PrimaryAgents: cfg.PrimaryAgents, Tools: cfg.AgentTools}
		meta, body = convert.Agent(meta, body, name, opts)
	default:
		meta, body = convert.Command(meta, body, name)
	}
	return frontmatter.Compose(meta, body), nil
}
