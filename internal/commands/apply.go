package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todos/internal/exitcode"
	"todos/internal/task"
)

func init() {
	Register(&ApplyCmd{})
}

// ApplyCmd dispatches newline-delimited JSON actions, one per line, in order.
// Each line is saved as it is applied; the first bad line stops the run.
type ApplyCmd struct{}

func (c *ApplyCmd) Name() string      { return "apply" }
func (c *ApplyCmd) Aliases() []string { return nil }
func (c *ApplyCmd) Synopsis() string  { return "Apply JSON actions from a file or stdin" }
func (c *ApplyCmd) Usage() string     { return "todos apply [file]" }
func (c *ApplyCmd) NeedsStore() bool  { return true }
func (c *ApplyCmd) NeedsAuth() bool   { return false }

func (c *ApplyCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ApplyCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	var in io.Reader = env.In
	switch {
	case len(args) > 1:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	case len(args) == 1 && args[0] != "-":
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		defer f.Close()
		in = f
	}
	if in == nil {
		in = strings.NewReader("")
	}

	applied := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		a, err := task.DecodeAction([]byte(raw))
		if err != nil {
			fmt.Fprintf(errOut, "error: line %d: %v\n", line, err)
			if errors.Is(err, task.ErrUnknownAction) {
				env.Log.WithField("line", line).Error("rejected unknown action")
			}
			return exitcode.UserError
		}

		if _, err := env.Store.Dispatch(ctx, a); err != nil {
			fmt.Fprintf(errOut, "error: line %d: storage error: %v\n", line, err)
			return exitcode.BackendError
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "applied %d\n", applied)
	}
	return exitcode.Success
}
