package generator

import (
	"github.com/thoreinstein/ocgen/internal/backup"
)

// Kind classifies what an action produced.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindAgentsMD  Kind = "agents-md"
	KindAgent     Kind = "agent"
	KindCommand   Kind = "command"
	KindSkill     Kind = "skill"
	KindWorkflow  Kind = "workflow"
	KindScripts   Kind = "scripts"
	KindEnv       Kind = "env"
	KindLib       Kind = "plugin-lib"
	KindScout     Kind = "scout-block"
	KindIgnore    Kind = "ckignore"
	KindPlugin    Kind = "plugin"
	KindPackage   Kind = "package"
)

// Outcome is what happened to one output path.
type Outcome int

const (
	// OutcomeCreated means the path did not exist and was written.
	OutcomeCreated Outcome = iota

	// OutcomeUpdated means an existing path was overwritten with new content.
	OutcomeUpdated

	// OutcomeUnchanged means the existing content already matched.
	OutcomeUnchanged

	// OutcomeSkipped means the path exists and Force was not set.
	OutcomeSkipped

	// OutcomePlanned means a dry run would have written the path.
	OutcomePlanned

	// OutcomeFailed means the source or target could not be processed.
	OutcomeFailed
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSkipped:
		return "skipped"
	case OutcomePlanned:
		return "planned"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name in JSON reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Action records one output path.
type Action struct {
	Kind    Kind    `json:"kind"`
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`

	// Source is the input path, relative to the project root, if any.
	Source string `json:"source,omitempty"`

	// Detail explains skips and failures.
	Detail string `json:"detail,omitempty"`

	// Diff is set on planned actions when diffs were requested.
	Diff string `json:"diff,omitempty"`

	Err error `json:"-"`
}

// Summary counts actions of one kind by outcome.
type Summary struct {
	Kind      Kind `json:"kind"`
	Written   int  `json:"written"`
	Unchanged int  `json:"unchanged"`
	Skipped   int  `json:"skipped"`
	Planned   int  `json:"planned"`
	Failed    int  `json:"failed"`
}

// Report is the result of one generator run.
type Report struct {
	Root    string   `json:"root"`
	DryRun  bool     `json:"dry_run"`
	Actions []Action `json:"actions"`

	// Backup is the snapshot taken before this run, if one was.
	Backup *backup.Manifest `json:"backup,omitempty"`
}

func (r *Report) add(a Action) {
	r.Actions = append(r.Actions, a)
}

// Summaries returns per-kind counts in order of first appearance.
func (r *Report) Summaries() []Summary {
	index := make(map[Kind]int)
	var out []Summary
	for _, a := range r.Actions {
		i, ok := index[a.Kind]
		if !ok {
			i = len(out)
			index[a.Kind] = i
			out = append(out, Summary{Kind: a.Kind})
		}
		s := &out[i]
		switch a.Outcome {
		case OutcomeCreated, OutcomeUpdated:
			s.Written++
		case OutcomeUnchanged:
			s.Unchanged++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomePlanned:
			s.Planned++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return out
}

// Count returns how many actions of kind ended with outcome.
func (r *Report) Count(kind Kind, outcome Outcome) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind && a.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failures returns the failed actions.
func (r *Report) Failures() []Action {
	var out []Action
	for _, a := range r.Actions {
		if a.Outcome == OutcomeFailed {
			out = append(out, a)
		}
	}
	return out
}

// Find returns the action for path, if any.
func (r *Report) Find(path string) (Action, bool) {
	for _, a := range r.Actions {
		if a.Path == path {
			return a, true
		}
	}
	return Action{}, false
}
