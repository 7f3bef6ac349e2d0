// Package cli is the command-line driving adapter. It parses one sub-command,
// calls the task module through its TaskPort and renders the result.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/example/taskmaster/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/mattn/go-isatty"
)

// Version of the taskmaster CLI.
const Version = "0.1"

// Exit codes returned by Execute.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Module runs a single CLI command against the task module.
type Module struct {
	tasks       task.TaskPort
	logger      types.Logger
	in          *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
	timeout     time.Duration
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)

// Option configures a Module.
type Option func(*Module)

// WithIO sets the streams the module reads prompts from and writes to.
// Prompts are only shown when in is a terminal.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(m *Module) {
		m.in = bufio.NewReader(in)
		m.out = out
		m.errOut = errOut
		m.interactive = isTerminal(in)
	}
}

// WithInteractive forces prompting on or off.
func WithInteractive(interactive bool) Option {
	return func(m *Module) {
		m.interactive = interactive
	}
}

// WithTimeout bounds each task service call.
func WithTimeout(d time.Duration) Option {
	return func(m *Module) {
		m.timeout = d
	}
}

// NewModule creates a new CLI module.
func NewModule(logger types.Logger, opts ...Option) *Module {
	m := &Module{
		logger:  logger.WithModule("cli"),
		timeout: 10 * time.Second,
	}
	WithIO(os.Stdin, os.Stdout, os.Stderr)(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cli"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.tasks = task.NewTaskAdapter(container)
	}
}

// Start checks that the task dependency was wired.
func (m *Module) Start(_ context.Context) error {
	if m.tasks == nil {
		return fmt.Errorf("task port dependency not set")
	}
	m.logger.Info("Module started (depends on: task)")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
