package di

import (
	"fmt"

	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with
// consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveRunner retrieves the process runner dependency from the injector
// with consistent error handling.
func ResolveRunner(injector Injector) (runner.Runner, error) {
	procRunner, err := do.Invoke[runner.Runner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve runner dependency: %w", err)
	}

	return procRunner, nil
}

// Handler decorators.

// WithTimer decorates a handler to automatically resolve the timer
// dependency. This higher-order function simplifies command handlers that
// need timer access.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
