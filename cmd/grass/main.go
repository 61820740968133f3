// Package main is the entry point for the grass CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/app"
	"github.com/tawada/grass-grower/internal/cli"
	"github.com/tawada/grass-grower/internal/infra/config"
	"github.com/tawada/grass-grower/internal/infra/logging"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load .env before reading the environment
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.NewLoader().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.Log, stderr)
	defer func() { _ = logger.Close() }()
	ctx = clog.WithLogger(ctx, logger.Logger)

	// Create dependency injection container
	container, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Create and execute root command
	root := cli.NewRootCommand(container, version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}
