package cmd

import (
	"os"
	"os/signal"

	"github.com/dadyar-ai/dadyarctl/pkg/cli/helpers"
	runtime "github.com/dadyar-ai/dadyarctl/pkg/di"
	"github.com/dadyar-ai/dadyarctl/pkg/svc/packager"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewBuildCmd wires the build command using the shared runtime container.
func NewBuildCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Freeze the application into a distributable bundle",
		Long: `Prepare a self-contained Python environment for the application ` +
			`and freeze it into a standalone distributable directory.`,
		SilenceUsage: true,
	}

	cmd.RunE = runtime.RunEWithRuntime(runtimeContainer, runtime.WithTimer(handleBuildRunE))

	return cmd
}

// handleBuildRunE executes the bootstrap pipeline followed by the freeze.
func handleBuildRunE(cmd *cobra.Command, injector runtime.Injector, tmr timer.Timer) error {
	tmr.Start()

	procRunner, err := runtime.ResolveRunner(injector)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	notify.Titlef(out, "📦", "Building distributable...")

	project, env, err := bootstrap(ctx, cmd, procRunner)
	if err != nil {
		return err
	}

	err = packager.NewPackager(procRunner, out).Build(ctx, env, project.Bundle)
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "distributable built")

	return nil
}
