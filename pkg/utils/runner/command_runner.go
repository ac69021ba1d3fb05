// Package runner executes external processes for the bootstrap pipeline.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Command describes an external process invocation.
type Command struct {
	// Path is the executable to run. It is not resolved against PATH unless
	// the caller passed a bare command name.
	Path string
	// Args are the arguments passed to the executable.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds additional environment entries in "KEY=value" form, appended
	// to the parent process environment.
	Env []string
}

// Result captures the stdout and stderr collected during a command execution.
// Both fields contain the complete output, including any output produced
// before an error occurred.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes external commands.
// Implementations should display output in real-time while also capturing it
// for programmatic access via Result.
type Runner interface {
	// Run executes the command, streaming stdout/stderr to the configured
	// writers in real time while capturing them for the result. The caller's
	// stdin is inherited so interactive children behave as if run directly.
	Run(ctx context.Context, cmd Command) (Result, error)

	// Capture executes the command and returns its combined output without
	// streaming. Intended for short probe commands.
	Capture(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands via os/exec with console output.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// NewExecRunner creates a runner that streams output to the given writers
// while capturing it for the Result.
//
// If stdout or stderr are nil, they default to os.Stdout and os.Stderr.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &ExecRunner{
		stdout: stdout,
		stderr: stderr,
		stdin:  os.Stdin,
	}
}

// Run executes the command and displays output in real-time.
// io.MultiWriter is used to display AND capture output, giving the same
// behavior as running the binary directly while keeping the output available
// programmatically.
func (r *ExecRunner) Run(ctx context.Context, command Command) (Result, error) {
	var outBuf, errBuf bytes.Buffer

	execCmd := exec.CommandContext(ctx, command.Path, command.Args...)
	execCmd.Dir = command.Dir
	execCmd.Stdout = io.MultiWriter(&outBuf, r.stdout)
	execCmd.Stderr = io.MultiWriter(&errBuf, r.stderr)
	execCmd.Stdin = r.stdin

	if len(command.Env) > 0 {
		execCmd.Env = append(os.Environ(), command.Env...)
	}

	runErr := execCmd.Run()
	if runErr != nil {
		return Result{Stdout: outBuf.String(), Stderr: errBuf.String()},
			fmt.Errorf("command execution failed: %w", runErr)
	}

	return Result{Stdout: outBuf.String(), Stderr: errBuf.String()}, nil
}

// Capture executes the command and returns its combined output.
func (r *ExecRunner) Capture(ctx context.Context, command Command) (string, error) {
	execCmd := exec.CommandContext(ctx, command.Path, command.Args...)
	execCmd.Dir = command.Dir

	if len(command.Env) > 0 {
		execCmd.Env = append(os.Environ(), command.Env...)
	}

	output, err := execCmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("command failed: %w\noutput: %s", err, string(output))
	}

	return string(output), nil
}

// ExitCode extracts the child process exit code from an error returned by
// Run. It reports false when the error does not carry an exit status (e.g.
// the binary could not be started at all).
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}

	return 0, false
}
