// Package provisioner creates and validates the isolated dependency sandbox
// (a Python venv) tied to a located interpreter.
package provisioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dadyar-ai/dadyarctl/pkg/svc/locator"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	procrunner "github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

// VenvDirName is the sandbox directory, relative to the project root.
const VenvDirName = ".venv"

// ErrSandboxCreation wraps sandbox creation failures. Partial sandbox state
// from a failed creation is left in place for manual inspection.
var ErrSandboxCreation = errors.New("failed to create sandbox environment")

// Environment is an isolated dependency sandbox owned by the orchestrator.
// It is created once per project root and reused across invocations.
type Environment struct {
	// Root is the project root the sandbox belongs to.
	Root string
	// VenvDir is the sandbox directory.
	VenvDir string
	// InterpreterPath is the sandbox-relative interpreter binary.
	InterpreterPath string
	// Isolated reports whether the environment is independent of any
	// system-wide installation.
	Isolated bool
}

// VenvProvisioner provisions venv sandboxes.
type VenvProvisioner struct {
	runner procrunner.Runner
	writer io.Writer
	goos   string
}

// NewVenvProvisioner creates a provisioner using the given process runner.
func NewVenvProvisioner(procRunner procrunner.Runner, writer io.Writer) *VenvProvisioner {
	return &VenvProvisioner{
		runner: procRunner,
		writer: writer,
		goos:   runtime.GOOS,
	}
}

// Ensure returns a valid sandbox for the project root, creating it from the
// located candidate when necessary. If the sandbox interpreter already exists
// the sandbox is reused untouched, with no re-creation and no version
// re-check.
func (p *VenvProvisioner) Ensure(
	ctx context.Context,
	root string,
	candidate locator.Candidate,
) (Environment, error) {
	venvDir := filepath.Join(root, VenvDirName)
	env := Environment{
		Root:            root,
		VenvDir:         venvDir,
		InterpreterPath: InterpreterPath(venvDir, p.goos),
		Isolated:        true,
	}

	info, err := os.Stat(env.InterpreterPath)
	if err == nil && !info.IsDir() {
		notify.Activityf(p.writer, "reusing existing environment at %s", venvDir)

		return env, nil
	}

	notify.Activityf(p.writer, "creating environment at %s", venvDir)

	_, err = p.runner.Capture(ctx, procrunner.Command{
		Path: candidate.Path,
		Args: []string{"-m", "venv", venvDir},
	})
	if err != nil {
		// No rollback: partial state stays on disk for inspection.
		return Environment{}, fmt.Errorf("%w: %w", ErrSandboxCreation, err)
	}

	return env, nil
}

// InterpreterPath returns the interpreter location inside a sandbox for the
// given platform.
func InterpreterPath(venvDir, goos string) string {
	if goos == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}

	return filepath.Join(venvDir, "bin", "python")
}
