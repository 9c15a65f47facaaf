package doctor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/thoreinstein/ocgen/internal/backup"
	"github.com/thoreinstein/ocgen/internal/convert"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/paths"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

// SourceCheck confirms the project has a .claude tree to convert.
type SourceCheck struct {
	Root string
}

var _ Check = (*SourceCheck)(nil)

func (c *SourceCheck) Name() string     { return "claude-dir" }
func (c *SourceCheck) Category() string { return "source" }

func (c *SourceCheck) Run(_ context.Context) *CheckResult {
	dir := paths.ClaudeDir(c.Root)
	if !fileutil.IsDir(dir) {
		return &CheckResult{
			Status:  SeverityError,
			Message: dir + " not found",
			FixHint: "run ocgen from a project that has a .claude directory",
		}
	}

	agents, _ := filepath.Glob(filepath.Join(dir, "agents", "*.md"))
	return &CheckResult{
		Status:  SeverityPass,
		Message: fmt.Sprintf("%s has %d agents", dir, len(agents)),
	}
}

// ConfigCheck reports the outcome of loading the ocgen config file.
type ConfigCheck struct {
	// Path is the config file in use, empty when running on defaults.
	Path string

	// Err is the load error, if any.
	Err error
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	switch {
	case c.Err != nil:
		return &CheckResult{
			Status:  SeverityError,
			Message: c.Err.Error(),
			FixHint: "fix the config file or regenerate it with 'ocgen init --force'",
		}
	case c.Path == "":
		return &CheckResult{Status: SeverityInfo, Message: "no config file, using defaults"}
	default:
		return &CheckResult{Status: SeverityPass, Message: "loaded " + c.Path}
	}
}

// FrontmatterCheck validates the frontmatter of every generated file in one
// .opencode subdirectory as standard YAML.
type FrontmatterCheck struct {
	// Dir is the directory holding generated *.md files.
	Dir string

	// Label names what the files are, such as "agents".
	Label string
}

var _ Check = (*FrontmatterCheck)(nil)

func (c *FrontmatterCheck) Name() string     { return c.Label + "-frontmatter" }
func (c *FrontmatterCheck) Category() string { return "output" }

func (c *FrontmatterCheck) Run(ctx context.Context) *CheckResult {
	files, err := filepath.Glob(filepath.Join(c.Dir, "*.md"))
	if err != nil {
		return &CheckResult{Status: SeverityError, Message: err.Error()}
	}
	if len(files) == 0 {
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "no generated " + c.Label,
			FixHint: "run 'ocgen generate'",
		}
	}
	sort.Strings(files)

	var problems []Problem
	warnOnly := true
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		p, fatal := checkFile(path)
		if p == nil {
			continue
		}
		problems = append(problems, *p)
		if fatal {
			warnOnly = false
		}
	}

	if len(problems) == 0 {
		return &CheckResult{
			Status:  SeverityPass,
			Message: fmt.Sprintf("%d %s valid", len(files), c.Label),
		}
	}

	status := SeverityError
	if warnOnly {
		status = SeverityWarning
	}
	return &CheckResult{
		Status:   status,
		Message:  fmt.Sprintf("%d of %d %s have problems", len(problems), len(files), c.Label),
		Problems: problems,
		FixHint:  "regenerate with 'ocgen generate --force'",
	}
}

// checkFile returns the problem with one generated file, if any, and
// whether it stops OpenCode from loading the file.
func checkFile(path string) (*Problem, bool) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return &Problem{Path: path, Issue: err.Error()}, true
	}
	content := string(data)
	if err := frontmatter.Validate(content); err != nil {
		return &Problem{Path: path, Issue: err.Error()}, true
	}
	if !frontmatter.ParseDocument(content).Meta.Has(convert.KeyDescription) {
		return &Problem{Path: path, Issue: "no description"}, false
	}
	return nil, false
}

// AgentsMDCheck confirms AGENTS.md exists at the project root.
type AgentsMDCheck struct {
	Root string
}

var _ Check = (*AgentsMDCheck)(nil)

func (c *AgentsMDCheck) Name() string     { return "agents-md" }
func (c *AgentsMDCheck) Category() string { return "output" }

func (c *AgentsMDCheck) Run(_ context.Context) *CheckResult {
	path := paths.AgentsFile(c.Root)
	if !fileutil.Exists(path) {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: paths.AgentsFileName + " missing",
			FixHint: "run 'ocgen generate'",
		}
	}
	return &CheckResult{Status: SeverityPass, Message: path + " present"}
}

// BackupCheck verifies the hashes of the latest .opencode backup.
type BackupCheck struct {
	// Dir is the directory whose backup is checked.
	Dir     string
	Manager *backup.Manager
}

var _ Check = (*BackupCheck)(nil)

func (c *BackupCheck) Name() string     { return "backup" }
func (c *BackupCheck) Category() string { return "backup" }

func (c *BackupCheck) Run(_ context.Context) *CheckResult {
	mgr := c.Manager
	if mgr == nil {
		mgr = backup.NewManager()
	}

	manifest, err := mgr.Load(c.Dir)
	if errors.Is(err, backup.ErrNoBackup) {
		return &CheckResult{Status: SeverityInfo, Message: "no backup"}
	}
	if err != nil {
		return &CheckResult{Status: SeverityError, Message: err.Error()}
	}

	if err := mgr.Verify(manifest); err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: err.Error(),
			FixHint: "the backup no longer matches its manifest; remove " + manifest.Dir + " if it is not needed",
		}
	}
	return &CheckResult{
		Status: SeverityPass,
		Message: fmt.Sprintf("%d files from %s verified",
			len(manifest.Files), manifest.CreatedAt.Format("2006-01-02 15:04")),
	}
}

// Standard returns the checks `ocgen check` runs for the project at root.
func Standard(root, configPath string, configErr error) []Check {
	out := paths.OpenCodeDir(root)
	return []Check{
		&SourceCheck{Root: root},
		&ConfigCheck{Path: configPath, Err: configErr},
		&AgentsMDCheck{Root: root},
		&FrontmatterCheck{Dir: filepath.Join(out, "agents"), Label: "agents"},
		&FrontmatterCheck{Dir: filepath.Join(out, "commands"), Label: "commands"},
		&BackupCheck{Dir: out},
	}
}
