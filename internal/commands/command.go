// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/sirupsen/logrus"

	"todos/internal/config"
	"todos/internal/service"
	"todos/internal/store"
)

// Env carries what a command may use. Store is nil unless NeedsStore
// returns true; Remote is nil unless NeedsAuth returns true.
type Env struct {
	Config *config.Config
	Log    *logrus.Entry
	Store  *store.Store
	Remote service.Service
	In     io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes tasks.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional arguments left after flag
	// parsing and returns the exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// optString is a string flag that remembers whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

func (o *optString) reset() { *o = optString{} }
