// Package git provides the git operations mementor needs via shell commands.
//
// All operations call the git CLI through [github.com/mementor/mementor/internal/cmd]
// rather than using Go git libraries, so user configuration (hooks path,
// safe.directory, aliases) is honored.
//
// # Repository Operations
//
//   - [RepoRoot]: Top-level directory of the working tree
//   - [IsInsideRepo]: Whether a path is inside a working tree
//   - [HooksDir]: Directory git runs hooks from (respects core.hooksPath)
//
// # Index Operations
//
//   - [StagedFiles]: Added, copied, modified or renamed paths in the index
//   - [Add]: Stage files for the next commit
package git
