package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"todos/internal/backend/googletasks"
	"todos/internal/commands"
	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/logger"
	"todos/internal/metrics"
	"todos/internal/service"
	"todos/internal/storage"
	"todos/internal/store"
)

// StorageFactory opens the persistence layer described by cfg.
// If the result implements io.Closer it is closed after the command runs.
type StorageFactory func(ctx context.Context, cfg *config.Config, log *logrus.Entry) (storage.Persistence, error)

// ServiceFactory creates the Google Tasks service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// DefaultStorage opens the configured storage backend.
func DefaultStorage(ctx context.Context, cfg *config.Config, log *logrus.Entry) (storage.Persistence, error) {
	return storage.Open(ctx, cfg, log)
}

// errNotLoggedIn is reported when push runs without a stored token.
var errNotLoggedIn = errors.New("not logged in (run: todos login)")

// DefaultService checks for credentials and connects to Google Tasks.
func DefaultService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("oauth_client.json not found in %s", cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, errNotLoggedIn
	}
	return googletasks.New(ctx, cfg)
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	storage  StorageFactory
	remote   ServiceFactory

	// In is handed to commands that read input. Nil means empty input.
	In io.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
func NewDispatcher(registry *commands.Registry, storage StorageFactory, remote ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		storage:  storage,
		remote:   remote,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet, debug, ephemeral bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&quiet, "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&ephemeral, "ephemeral", false, "")

	cmd.RegisterFlags(fs)

	positionalArgs, err := parseInterspersed(fs, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log := logger.New(errOut, level).WithField("command", cmd.Name())

	env := &commands.Env{
		Config: cfg,
		Log:    log,
		In:     d.In,
	}

	var m *metrics.Metrics
	if cfg.Metrics.Textfile != "" {
		m = metrics.New()
	}

	if cmd.NeedsStore() {
		p, err := d.storage(ctx, cfg, log)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.BackendError
		}
		if c, ok := p.(io.Closer); ok {
			defer c.Close()
		}

		opts := []store.Option{store.WithLogger(log)}
		if m != nil {
			opts = append(opts, store.WithObserver(m))
		}
		env.Store, err = store.Open(ctx, p, opts...)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.BackendError
		}
	}

	if cmd.NeedsAuth() {
		if d.remote == nil {
			fmt.Fprintln(errOut, "error: google tasks is not available")
			return exitcode.AuthError
		}
		env.Remote, err = d.remote(ctx, cfg)
		if err != nil {
			if isAuthError(err) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	code := cmd.Run(ctx, env, positionalArgs, out, errOut)

	if m != nil {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.WithError(err).Warn("failed to write metrics textfile")
		}
	}
	return code
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for len(args) > 0 {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		consumed := len(args) - len(fs.Args())
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, fs.Args()...), nil
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	return positional, nil
}

// describeFlagError rewrites flag package errors into the CLI's wording.
func describeFlagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return "flag needs an argument: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
	}
	return errStr
}

func isAuthError(err error) bool {
	if errors.Is(err, errNotLoggedIn) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "token") || strings.Contains(msg, "oauth")
}
