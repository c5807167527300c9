package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todos/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	content string
}

// SetContent sets the content (for testing).
func (c *AddCmd) SetContent(content string) {
	c.content = content
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todos add [--content <text>] <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	t, err := env.Store.Create(ctx, title, c.content)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, t.ID)
	}
	return exitcode.Success
}
