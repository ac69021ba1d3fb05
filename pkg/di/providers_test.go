package di_test

import (
	"testing"

	runtime "github.com/dadyar-ai/dadyarctl/pkg/di"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime(t *testing.T) {
	t.Parallel()

	rt := runtime.NewRuntime()

	require.NotNil(t, rt, "expected runtime to be created")
}

func TestNewRuntime_ProvidesTimer(t *testing.T) {
	t.Parallel()

	rt := runtime.NewRuntime()

	err := rt.Invoke(func(injector runtime.Injector) error {
		tmr, resolveErr := runtime.ResolveTimer(injector)
		require.NoError(t, resolveErr, "expected timer to be resolved")
		require.NotNil(t, tmr, "expected timer to be non-nil")

		return nil
	})

	require.NoError(t, err, "expected invoke to succeed")
}

func TestNewRuntime_ProvidesRunner(t *testing.T) {
	t.Parallel()

	rt := runtime.NewRuntime()

	err := rt.Invoke(func(injector runtime.Injector) error {
		procRunner, resolveErr := runtime.ResolveRunner(injector)
		require.NoError(t, resolveErr, "expected runner to be resolved")
		require.NotNil(t, procRunner, "expected runner to be non-nil")

		return nil
	})

	require.NoError(t, err, "expected invoke to succeed")
}
