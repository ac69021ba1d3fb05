// Package cmd wires the dadyarctl command tree.
package cmd

import (
	"fmt"

	"github.com/dadyar-ai/dadyarctl/pkg/cli/helpers"
	"github.com/dadyar-ai/dadyarctl/pkg/cli/ui/errorhandler"
	runtime "github.com/dadyar-ai/dadyarctl/pkg/di"
	"github.com/spf13/cobra"
)

// DirectoryFlagName selects the project root directory.
const DirectoryFlagName = "directory"

// NewRootCmd creates and returns the root command with version info and
// subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "dadyarctl",
		Short:        "dadyarctl bootstraps and packages the Dadyar application",
		Long: "dadyarctl prepares a self-contained Python environment for the " +
			"Dadyar application, launches it for operators, and freezes it into " +
			"a distributable bundle.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show per-activity timing output",
	)
	cmd.PersistentFlags().StringP(
		DirectoryFlagName,
		"d",
		".",
		"Project root directory",
	)

	cmd.AddCommand(NewRunCmd(runtimeContainer))
	cmd.AddCommand(NewBuildCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
