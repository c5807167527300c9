package commands

import (
	"context"
	"flag"
	"io"

	"todos/internal/exitcode"
	"todos/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task with its content" }
func (c *ShowCmd) Usage() string     { return "todos show <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }
func (c *ShowCmd) NeedsAuth() bool   { return false }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	t, ok := resolveTask(env, args, errOut)
	if !ok {
		return exitcode.UserError
	}
	output.FormatDetail(out, t)
	return exitcode.Success
}
