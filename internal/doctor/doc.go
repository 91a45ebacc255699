// Package doctor diagnoses a mementor setup and optionally repairs it.
//
// Checks, in order:
//
//   - Environment: git is installed and the working directory is a repository
//   - Config: the effective configuration is valid
//   - Document: the active document and the configured template are readable
//   - Archive: the snapshot archive directory exists
//   - Hook: the git pre-commit hook runs "mementor precommit"
//
// # Usage
//
//	err := doctor.Run(ctx, opts)  // check, and fix when opts.Fix is set
//
// Only the archive directory and the pre-commit hook can be fixed
// automatically. Each [Issue] names the fix --fix would apply.
package doctor
