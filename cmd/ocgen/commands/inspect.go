package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/convert"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/translate"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

var (
	inspectFormat    string
	inspectConverted bool
	inspectPick      bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "o", string(translate.FormatYAML),
		"output format: yaml, json, toml")
	inspectCmd.Flags().BoolVar(&inspectConverted, "converted", false,
		"show the frontmatter ocgen would generate instead of the source's")
	inspectCmd.Flags().BoolVarP(&inspectPick, "pick", "p", false,
		"choose a source agent or command interactively")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [FILE]",
	Short: "Show how ocgen parses a file's frontmatter",
	Long: `Parse the frontmatter of FILE with ocgen's lenient parser and print the
fields it found. Use --converted to see the OpenCode frontmatter instead.

Files under a commands directory are converted as commands, everything else
as agents.`,
	Example: `  ocgen inspect .claude/agents/planner.md
  ocgen inspect .claude/commands/plan.md --format json --converted
  ocgen inspect --pick`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func runInspect(c *cobra.Command, args []string) error {
	format, err := translate.ParseFormat(inspectFormat)
	if err != nil {
		return errors.NewUserError(err, "use yaml, json, or toml")
	}

	var path string
	switch {
	case inspectPick && len(args) > 0:
		return errors.NewUserError(errors.New("--pick takes no FILE"), "drop FILE or --pick")
	case inspectPick:
		root, err := projectRoot()
		if err != nil {
			return err
		}
		picked, ok, err := pickSource(root, loadedConfig)
		if err != nil || !ok {
			return err
		}
		path = picked
	case len(args) == 1:
		path = args[0]
	default:
		return errors.NewUserError(errors.New("no file given"), "pass FILE or use --pick")
	}

	meta, err := inspectFile(path, inspectConverted, loadedConfig)
	if err != nil {
		return err
	}
	out, err := translate.Encode(meta, format)
	if err != nil {
		return err
	}
	_, err = c.OutOrStdout().Write(out)
	return err
}

// inspectFile parses path and, when converted is set, maps it to OpenCode
// frontmatter.
func inspectFile(path string, converted bool, cfg *config.Config) (*frontmatter.Map, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.NewUserError(err, "check the file path")
	}
	meta, body := frontmatter.Parse(string(data))
	if !converted {
		return meta, nil
	}

	if name, ok := commandNameFor(path); ok {
		meta, _ = convert.Command(meta, body, name)
		return meta, nil
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	meta, _ = convert.Agent(meta, body, name, convert.AgentOptions{PrimaryAgents: cfg.PrimaryAgents, Tools: cfg.AgentTools})
	return meta, nil
}

// commandNameFor returns the flattened command name when path lies under a
// commands directory.
func commandNameFor(path string) (string, bool) {
	const marker = "/commands/"
	slash := "/" + filepath.ToSlash(path)
	i := strings.LastIndex(slash, marker)
	if i < 0 {
		return "", false
	}
	return convert.CommandName(slash[i+len(marker):]), true
}
