// Package launcher hands control to the application entry point inside the
// prepared sandbox.
package launcher

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/dadyar-ai/dadyarctl/pkg/svc/provisioner"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	procrunner "github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

// AppSpec describes how to start the application.
type AppSpec struct {
	// EntryPoint is the entry file, relative to the project root.
	EntryPoint string
	// Headless starts the server without browser side effects; the entry
	// point honors the corresponding environment variables.
	Headless bool
}

// ExitError reports a non-zero application exit. The orchestrator propagates
// the code instead of treating the exit as its own failure.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return "application exited with status " + strconv.Itoa(e.Code)
}

// Launcher starts the application as a child process.
type Launcher struct {
	runner procrunner.Runner
	writer io.Writer
}

// NewLauncher creates a launcher using the given process runner.
func NewLauncher(procRunner procrunner.Runner, writer io.Writer) *Launcher {
	return &Launcher{runner: procRunner, writer: writer}
}

// Run starts the entry point with the sandbox interpreter and blocks until
// the child exits. Standard streams are inherited so operator output is
// visible live. A non-zero child exit is returned as *ExitError; there is no
// retry and no restart. Cancelling ctx (operator interrupt) terminates the
// child.
func (l *Launcher) Run(ctx context.Context, env provisioner.Environment, app AppSpec) error {
	notify.Titlef(l.writer, "🚀", "Starting application...")

	_, err := l.runner.Run(ctx, procrunner.Command{
		Path: env.InterpreterPath,
		Args: []string{filepath.Join(env.Root, app.EntryPoint)},
		Dir:  env.Root,
		Env:  appEnv(app),
	})
	if err != nil {
		if code, ok := procrunner.ExitCode(err); ok {
			return &ExitError{Code: code}
		}

		return fmt.Errorf("start application: %w", err)
	}

	return nil
}

// appEnv builds the environment overrides for the child process.
func appEnv(app AppSpec) []string {
	if !app.Headless {
		return nil
	}

	return []string{
		"STREAMLIT_SERVER_HEADLESS=true",
		"STREAMLIT_BROWSER_GATHER_USAGE_STATS=false",
	}
}
