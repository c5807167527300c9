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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields that are not given keep their
// current value; the completion flag is never changed here.
type EditCmd struct {
	title   optString
	content optString
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) { c.title.Set(title) }

// SetContent sets the new content (for testing).
func (c *EditCmd) SetContent(content string) { c.content.Set(content) }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or content" }
func (c *EditCmd) Usage() string {
	return "todos edit <ref> [--title <text>] [--content <text>]"
}
func (c *EditCmd) NeedsStore() bool { return true }
func (c *EditCmd) NeedsAuth() bool  { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title.reset()
	c.content.reset()
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.content, "content", "")
	fs.Var(&c.content, "c", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !c.title.set && !c.content.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --content)")
		return exitcode.UserError
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	t, ok := resolveTask(env, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if c.title.set {
		t.Title = c.title.value
	}
	if c.content.set {
		t.Content = c.content.value
	}

	if err := env.Store.Update(ctx, t); err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
