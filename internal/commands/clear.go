package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/exitcode"
	"todos/internal/task"
)

func init() {
	Register(&ClearCompletedCmd{})
}

// ClearCompletedCmd deletes every completed task.
type ClearCompletedCmd struct{}

func (c *ClearCompletedCmd) Name() string      { return "clear-completed" }
func (c *ClearCompletedCmd) Aliases() []string { return nil }
func (c *ClearCompletedCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearCompletedCmd) Usage() string     { return "todos clear-completed" }
func (c *ClearCompletedCmd) NeedsStore() bool  { return true }
func (c *ClearCompletedCmd) NeedsAuth() bool   { return false }

func (c *ClearCompletedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCompletedCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	removed := 0
	for _, t := range task.ShowCompleted.Apply(env.Store.Tasks()) {
		if err := env.Store.Delete(ctx, t.ID); err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.BackendError
		}
		removed++
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "removed %d\n", removed)
	}
	return exitcode.Success
}
