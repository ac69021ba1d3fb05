// Package packager freezes the application plus its heavy dependency closure
// into a standalone distributable folder.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dadyar-ai/dadyarctl/pkg/apis/project/v1alpha1"
	"github.com/dadyar-ai/dadyarctl/pkg/svc/provisioner"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	procrunner "github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

const (
	// DistDirName is the conventional output directory.
	DistDirName = "dist"

	// workDirName is the freezing tool's intermediate build directory,
	// removed together with the output directory before each build.
	workDirName = "build"

	// freezeModule is the freezing tool's module name inside the sandbox.
	freezeModule = "PyInstaller"
)

var (
	// ErrBuildToolInstall wraps failures installing the freezing tool.
	ErrBuildToolInstall = errors.New("failed to install build tool")

	// ErrFreeze wraps freezing tool invocation failures.
	ErrFreeze = errors.New("freezing tool failed")

	// ErrOutputVerification is returned when the expected output executable
	// is missing after a build, even one the freezing tool reported as
	// successful. Guards against silent partial builds.
	ErrOutputVerification = errors.New("build output verification failed")
)

// Packager runs the build pipeline inside the prepared sandbox.
type Packager struct {
	runner procrunner.Runner
	writer io.Writer
	goos   string
}

// NewPackager creates a packager using the given process runner.
func NewPackager(procRunner procrunner.Runner, writer io.Writer) *Packager {
	return &Packager{
		runner: procRunner,
		writer: writer,
		goos:   runtime.GOOS,
	}
}

// Build produces the distributable. Every step is a hard gate: build-tool
// install, stale-output cleanup, freeze, and output verification.
func (p *Packager) Build(
	ctx context.Context,
	env provisioner.Environment,
	bundle v1alpha1.Bundle,
) error {
	err := p.ensureBuildTool(ctx, env)
	if err != nil {
		return err
	}

	err = p.cleanStaleOutput(env.Root)
	if err != nil {
		return err
	}

	err = p.freeze(ctx, env, bundle)
	if err != nil {
		return err
	}

	return p.verifyOutput(env.Root, bundle.Name)
}

// ensureBuildTool installs the freezing tool into the sandbox.
func (p *Packager) ensureBuildTool(ctx context.Context, env provisioner.Environment) error {
	notify.Activityf(p.writer, "ensuring build tool is installed")

	_, err := p.runner.Capture(ctx, procrunner.Command{
		Path: env.InterpreterPath,
		Args: []string{"-m", "pip", "install", "pyinstaller"},
		Dir:  env.Root,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildToolInstall, err)
	}

	return nil
}

// cleanStaleOutput removes output from prior builds. Non-existent
// directories are tolerated.
func (p *Packager) cleanStaleOutput(root string) error {
	for _, dir := range []string{DistDirName, workDirName} {
		err := os.RemoveAll(filepath.Join(root, dir))
		if err != nil {
			return fmt.Errorf("remove stale %s directory: %w", dir, err)
		}
	}

	return nil
}

// freeze invokes the freezing tool with the declarative bundle manifest.
func (p *Packager) freeze(
	ctx context.Context,
	env provisioner.Environment,
	bundle v1alpha1.Bundle,
) error {
	notify.Activityf(p.writer, "freezing %s", bundle.Name)

	args := append([]string{"-m", freezeModule}, FreezeArgs(bundle, p.goos)...)

	_, err := p.runner.Run(ctx, procrunner.Command{
		Path: env.InterpreterPath,
		Args: args,
		Dir:  env.Root,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFreeze, err)
	}

	return nil
}

// verifyOutput checks the expected executable exists at the conventional
// output path. A zero exit from the freezing tool is not trusted on its own.
func (p *Packager) verifyOutput(root, name string) error {
	executable := OutputExecutablePath(root, name, p.goos)

	info, err := os.Stat(executable)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: expected executable %s is missing", ErrOutputVerification, executable)
	}

	notify.Successf(p.writer, "distributable ready at %s", filepath.Join(root, DistDirName, name))

	return nil
}

// OutputExecutablePath returns the conventional location of the frozen
// executable for the platform.
func OutputExecutablePath(root, name, goos string) string {
	executable := name
	if goos == "windows" {
		executable += ".exe"
	}

	return filepath.Join(root, DistDirName, name, executable)
}

// FreezeArgs renders the bundle manifest into freezing tool arguments.
//
// Data and hidden-import closures are collected per heavy dependency: each
// entry gets its own collect flags, and collection is not transitive across
// dependencies. Builds depend on this exact inclusion set.
func FreezeArgs(bundle v1alpha1.Bundle, goos string) []string {
	args := []string{"--noconfirm", "--clean", "--onedir", "--name", bundle.Name}

	separator := ":"
	if goos == "windows" {
		separator = ";"
	}

	for _, include := range bundle.DataIncludes {
		args = append(args, "--add-data", include.Source+separator+include.Dest)
	}

	for _, dependency := range bundle.HeavyDependencies {
		args = append(args,
			"--collect-data", dependency,
			"--collect-submodules", dependency,
		)
	}

	for _, hidden := range bundle.HiddenImports {
		args = append(args, "--hidden-import", hidden)
	}

	for _, excluded := range bundle.ExcludedModules {
		args = append(args, "--exclude-module", excluded)
	}

	return append(args, bundle.EntryPoint)
}
