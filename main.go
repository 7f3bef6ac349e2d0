package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	"github.com/example/taskmaster/config"
	"github.com/example/taskmaster/modules/cli"
	"github.com/example/taskmaster/modules/task"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, rest, err := config.Load(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintUsage(os.Stdout)
			return cli.ExitOK
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitUsage
	}

	// Commands that never touch the task store run without the application.
	if len(rest) == 0 {
		cli.PrintUsage(os.Stderr)
		return cli.ExitUsage
	}
	switch rest[0] {
	case "version", "--version":
		cli.PrintVersion(os.Stdout)
		return cli.ExitOK
	case "help", "-h", "--help":
		cli.PrintUsage(os.Stdout)
		return cli.ExitOK
	}

	logLevel := mono.LogLevelError
	if cfg.Verbose {
		logLevel = mono.LogLevelInfo
	}

	opts := []mono.MonoFrameworkOption{
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithShutdownTimeout(shutdownTimeout),
	}
	if cfg.NATSPort == config.DefaultNATSPort {
		// A single command needs no listener, so concurrent runs never clash.
		opts = append(opts, mono.WithNATSDontListen(), mono.WithNATSInProcessConn())
	} else {
		opts = append(opts, mono.WithNATSPort(cfg.NATSPort))
	}

	app, err := mono.NewMonoApplication(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create application: %v\n", err)
		return cli.ExitFailure
	}

	logger := app.Logger().With("invocation", uuid.NewString())
	if cfg.ConfigFile != "" {
		logger.Info("Loaded config file", "path", cfg.ConfigFile)
	}

	cliModule := cli.NewModule(logger, cli.WithTimeout(cfg.RequestTimeout))

	// The task module must be registered before the CLI that depends on it.
	if err := app.Register(task.NewModule(cfg.DBPath, cfg.DBDebug, logger)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register task module: %v\n", err)
		return cli.ExitFailure
	}
	if err := app.Register(cliModule); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register cli module: %v\n", err)
		return cli.ExitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start application: %v\n", err)
		return cli.ExitFailure
	}

	code := cliModule.Execute(ctx, rest)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to stop application")
		if code == cli.ExitOK {
			code = cli.ExitFailure
		}
	}
	return code
}
