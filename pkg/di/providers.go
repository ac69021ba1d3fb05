package di

import (
	"os"

	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command
// and tests. It registers default implementations for the timer and the
// process runner.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideRunner,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideRunner registers the process runner dependency. Child process
// output streams to the console.
func provideRunner(i Injector) error {
	do.Provide(i, func(Injector) (runner.Runner, error) {
		return runner.NewExecRunner(os.Stdout, os.Stderr), nil
	})

	return nil
}
