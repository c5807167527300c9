package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todos/internal/exitcode"
	"todos/internal/service"
	"todos/internal/task"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd copies the local tasks into a Google Tasks list. It only ever
// writes to the remote; nothing is read back into the local collection.
type PushCmd struct {
	listName string
	filter   string
}

// SetOptions sets the list name and filter (for testing).
func (c *PushCmd) SetOptions(listName, filter string) {
	c.listName = listName
	c.filter = filter
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return []string{"export"} }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to a Google Tasks list" }
func (c *PushCmd) Usage() string {
	return "todos push [--list <list-name>] [--filter all|completed|active]"
}
func (c *PushCmd) NeedsStore() bool { return true }
func (c *PushCmd) NeedsAuth() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	listName := strings.TrimSpace(c.listName)
	if listName == "" {
		listName = strings.TrimSpace(env.Config.Export.List)
	}

	list, err := resolveOrCreateList(ctx, env.Remote, listName)
	if err != nil {
		if errors.Is(err, service.ErrAmbiguousList) {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	// Google Tasks puts each inserted task on top, so insert last-to-first
	// to keep the local order.
	tasks := filter.Apply(env.Store.Tasks())
	for i := len(tasks) - 1; i >= 0; i-- {
		if err := env.Remote.InsertTask(ctx, list.ID, service.FromLocal(tasks[i])); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}

	env.Log.WithField("list", list.Title).WithField("tasks", len(tasks)).Info("pushed tasks")
	if !env.Config.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s\n", len(tasks), list.Title)
	}
	return exitcode.Success
}

// resolveOrCreateList returns the named list, creating it when missing.
// An empty name means the default list.
func resolveOrCreateList(ctx context.Context, svc service.Service, name string) (service.TaskList, error) {
	if name == "" {
		return svc.DefaultList(ctx)
	}
	list, err := svc.ResolveList(ctx, name)
	if errors.Is(err, service.ErrListNotFound) {
		return svc.CreateList(ctx, name)
	}
	return list, err
}
