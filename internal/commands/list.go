package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/exitcode"
	"todos/internal/output"
	"todos/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also what `todos` with no
// arguments runs.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todos list [--filter all|completed|active]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Numbers are positions in the whole collection so they stay valid as
	// references when a filter hides some tasks.
	shown := 0
	for i, t := range env.Store.Tasks() {
		if !filter.Match(t) {
			continue
		}
		output.FormatTask(out, i+1, t)
		shown++
	}

	if shown == 0 && !env.Config.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
