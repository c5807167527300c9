// Package main is the entry point for the todos CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todos/internal/cli"
	"todos/internal/commands"
)

func main() {
	// Cancel on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.DefaultStorage, cli.DefaultService)
	dispatcher.In = os.Stdin

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
