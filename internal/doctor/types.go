package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryEnvironment represents problems with git or the repository.
	CategoryEnvironment IssueCategory = "environment"
	// CategoryConfig represents invalid configuration.
	CategoryConfig IssueCategory = "config"
	// CategoryDocument represents unreadable documents or templates.
	CategoryDocument IssueCategory = "document"
	// CategoryArchive represents a missing snapshot archive.
	CategoryArchive IssueCategory = "archive"
	// CategoryHook represents a missing pre-commit hook.
	CategoryHook IssueCategory = "hook"
)

// FixAction names what --fix does for an issue.
type FixAction string

const (
	FixNone          FixAction = ""
	FixCreateArchive FixAction = "create_archive"
	FixInstallHook   FixAction = "install_hook"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        `json:"key" yaml:"key"`
	Description string        `json:"description" yaml:"description"`
	FixAction   FixAction     `json:"fix_action,omitempty" yaml:"fix_action,omitempty"`
	Category    IssueCategory `json:"category" yaml:"category"`
}

// Check is the outcome of one diagnostic.
type Check struct {
	Name   string `json:"name" yaml:"name"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail" yaml:"detail"`
}

// Result collects all checks and the issues they raised.
type Result struct {
	Checks []Check `json:"checks" yaml:"checks"`
	Issues []Issue `json:"issues" yaml:"issues"`
}
