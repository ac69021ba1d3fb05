// Package installer resolves and installs the declared dependency manifest
// into the sandbox environment, idempotently.
package installer

import (
	"context"
	"io"

	"github.com/dadyar-ai/dadyarctl/pkg/svc/provisioner"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	procrunner "github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

// Status reports the overall outcome of an install pass.
type Status int

const (
	// StatusSuccess means every manifest entry installed.
	StatusSuccess Status = iota
	// StatusSkipped means the fast-path probe found the sandbox already
	// usable and phase 2 was not run.
	StatusSkipped
	// StatusPartialFailure means the manifest install failed. The pipeline
	// continues anyway: partial environments are sometimes usable and a
	// flaky mirror must not block the operator.
	StatusPartialFailure
)

// ToolingUpgrade records the best-effort self-upgrade of the sandbox's
// package-management tooling. A failure here is observed and intentionally
// suppressed, never fatal.
type ToolingUpgrade struct {
	// Attempted reports whether the upgrade ran at all.
	Attempted bool
	// Suppressed reports whether a failure occurred and was swallowed.
	Suppressed bool
	// Err is the suppressed failure, nil when the upgrade succeeded.
	Err error
}

// Result describes an install pass.
type Result struct {
	// Status is the overall outcome.
	Status Status
	// ToolingUpgrade is the phase-1 outcome.
	ToolingUpgrade ToolingUpgrade
	// InstallErr is the phase-2 failure behind StatusPartialFailure.
	InstallErr error
}

// PipInstaller installs manifests with the sandbox's pip.
type PipInstaller struct {
	runner procrunner.Runner
	writer io.Writer

	// sentinelImport is the representative heavy dependency probed by the
	// fast path. Empty disables the probe. The gate is allowed to be
	// imprecise; the underlying installer is idempotent.
	sentinelImport string
}

// NewPipInstaller creates an installer. sentinelImport may be empty to
// disable the fast-path probe.
func NewPipInstaller(procRunner procrunner.Runner, writer io.Writer, sentinelImport string) *PipInstaller {
	return &PipInstaller{
		runner:         procRunner,
		writer:         writer,
		sentinelImport: sentinelImport,
	}
}

// Install runs the two-phase install into the sandbox. It never returns an
// error for dependency failures: phase-2 failures degrade to
// StatusPartialFailure with a warning, a contract the callers rely on.
func (i *PipInstaller) Install(
	ctx context.Context,
	env provisioner.Environment,
	manifest Manifest,
) (Result, error) {
	result := Result{Status: StatusSuccess}

	// Phase 1: best-effort tooling self-upgrade.
	result.ToolingUpgrade = i.upgradeTooling(ctx, env)

	if i.sandboxAlreadyUsable(ctx, env) {
		notify.Activityf(i.writer, "%s already importable, skipping dependency install",
			i.sentinelImport)

		result.Status = StatusSkipped

		return result, nil
	}

	// Phase 2: install the manifest.
	notify.Activityf(i.writer, "installing %d dependencies from %s",
		len(manifest.Requirements), manifest.Path)

	_, err := i.runner.Run(ctx, procrunner.Command{
		Path: env.InterpreterPath,
		Args: []string{"-m", "pip", "install", "-r", manifest.Path},
		Dir:  env.Root,
	})
	if err != nil {
		notify.Warningf(i.writer,
			"dependency install failed, continuing with a partial environment: %v", err)

		result.Status = StatusPartialFailure
		result.InstallErr = err
	}

	return result, nil
}

// upgradeTooling upgrades pip itself. Failures are recorded and suppressed.
func (i *PipInstaller) upgradeTooling(ctx context.Context, env provisioner.Environment) ToolingUpgrade {
	upgrade := ToolingUpgrade{Attempted: true}

	_, err := i.runner.Capture(ctx, procrunner.Command{
		Path: env.InterpreterPath,
		Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
		Dir:  env.Root,
	})
	if err != nil {
		notify.Warningf(i.writer, "pip self-upgrade failed, continuing: %v", err)

		upgrade.Suppressed = true
		upgrade.Err = err
	}

	return upgrade
}

// sandboxAlreadyUsable probes the sentinel heavy dependency.
func (i *PipInstaller) sandboxAlreadyUsable(ctx context.Context, env provisioner.Environment) bool {
	if i.sentinelImport == "" {
		return false
	}

	_, err := i.runner.Capture(ctx, procrunner.Command{
		Path: env.InterpreterPath,
		Args: []string{"-c", "import " + i.sentinelImport},
		Dir:  env.Root,
	})

	return err == nil
}
