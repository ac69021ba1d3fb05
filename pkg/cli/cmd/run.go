package cmd

import (
	"os"
	"os/signal"

	"github.com/dadyar-ai/dadyarctl/pkg/cli/helpers"
	runtime "github.com/dadyar-ai/dadyarctl/pkg/di"
	"github.com/dadyar-ai/dadyarctl/pkg/io/seeder"
	"github.com/dadyar-ai/dadyarctl/pkg/svc/launcher"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewRunCmd wires the run command using the shared runtime container.
func NewRunCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Prepare the environment and start the application",
		Long: `Prepare a self-contained Python environment for the application ` +
			`and start it, blocking until it exits.`,
		SilenceUsage: true,
	}

	cmd.RunE = runtime.RunEWithRuntime(runtimeContainer, runtime.WithTimer(handleRunRunE))

	return cmd
}

// handleRunRunE executes the full bootstrap pipeline and hands control to
// the application until it exits.
func handleRunRunE(cmd *cobra.Command, injector runtime.Injector, tmr timer.Timer) error {
	tmr.Start()

	procRunner, err := runtime.ResolveRunner(injector)
	if err != nil {
		return err
	}

	// An operator interrupt cancels the pipeline and terminates the child.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	notify.Titlef(out, "🧰", "Preparing environment...")

	project, env, err := bootstrap(ctx, cmd, procRunner)
	if err != nil {
		return err
	}

	err = seeder.NewSeeder(out).Seed(env.Root)
	if err != nil {
		return err
	}

	err = launcher.NewLauncher(procRunner, out).Run(ctx, env, launcher.AppSpec{
		EntryPoint: project.EntryPoint,
		Headless:   project.Launch.Headless,
	})
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "application exited cleanly")

	return nil
}
