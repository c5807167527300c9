package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/exitcode"
	"todos/internal/output"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command, which toggles completion.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task between open and done" }
func (c *DoneCmd) Usage() string     { return "todos done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	t, ok := resolveTask(env, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if err := env.Store.ToggleCompleted(ctx, t.ID); err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		t.IsCompleted = !t.IsCompleted
		fmt.Fprintln(out, output.Status(t))
	}
	return exitcode.Success
}
