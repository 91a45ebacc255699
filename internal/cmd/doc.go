// Package cmd runs external commands (git, hook shells) with context support.
//
// Failures carry the command's trimmed stderr as the error message, so a
// failing "git add" surfaces git's own explanation. Commands are logged
// through the context logger when verbose mode is on.
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "add", path); err != nil {
//	    return fmt.Errorf("stage snapshot: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "rev-parse", "--show-toplevel")
package cmd
