package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"

	"github.com/dadyar-ai/dadyarctl/pkg/apis/project/v1alpha1"
	"github.com/dadyar-ai/dadyarctl/pkg/io/configmanager"
	"github.com/dadyar-ai/dadyarctl/pkg/svc/installer"
	"github.com/dadyar-ai/dadyarctl/pkg/svc/locator"
	"github.com/dadyar-ai/dadyarctl/pkg/svc/provisioner"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
	"github.com/spf13/cobra"
)

// ErrPreflight reports a project layout problem detected before any
// provisioning work starts.
var ErrPreflight = errors.New("project preflight failed")

// projectRoot resolves the directory flag to an absolute project root.
func projectRoot(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString(DirectoryFlagName)
	if err != nil {
		return "", fmt.Errorf("read flag %q: %w", DirectoryFlagName, err)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project root %q: %w", dir, err)
	}

	return root, nil
}

// preflight verifies the files every pipeline stage depends on. Failing
// fast here keeps a broken checkout from triggering interpreter downloads
// or sandbox creation.
func preflight(root string, project *v1alpha1.Project) error {
	for _, rel := range []string{project.EntryPoint, project.Requirements} {
		_, err := os.Stat(filepath.Join(root, rel))
		if err != nil {
			return fmt.Errorf("%w: required file %s is missing from %s", ErrPreflight, rel, root)
		}
	}

	return nil
}

// bootstrap runs the stages shared by run and build: configuration load,
// preflight, runtime location, sandbox provisioning, and dependency
// installation. It returns the loaded project and the ready sandbox.
func bootstrap(
	ctx context.Context,
	cmd *cobra.Command,
	procRunner runner.Runner,
) (*v1alpha1.Project, provisioner.Environment, error) {
	out := cmd.OutOrStdout()

	root, err := projectRoot(cmd)
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	cfgManager := configmanager.NewConfigManager(root, out)

	project, err := cfgManager.LoadConfig()
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	err = preflight(root, project)
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	strategies := locator.DefaultStrategies(goruntime.GOOS, procRunner, out)

	loc, err := locator.NewLocator(strategies, procRunner, project.MinRuntimeVersion, out)
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	candidate, err := loc.Locate(ctx)
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	env, err := provisioner.NewVenvProvisioner(procRunner, out).Ensure(ctx, root, candidate)
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	manifest, err := installer.LoadManifest(filepath.Join(root, project.Requirements))
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	_, err = installer.NewPipInstaller(procRunner, out, project.SentinelImport).
		Install(ctx, env, manifest)
	if err != nil {
		return nil, provisioner.Environment{}, err
	}

	return project, env, nil
}
