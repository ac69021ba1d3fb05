// Package helpers provides shared helpers for wiring CLI commands.
package helpers

import (
	"errors"
	"fmt"

	"github.com/dadyar-ai/dadyarctl/pkg/utils/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// TimingFlagName is the persistent flag that enables per-activity timing
// output.
const TimingFlagName = "timing"

// ErrNilCommand is returned when a nil command is passed to flag lookups.
var ErrNilCommand = errors.New("command is nil")

// IsTimingEnabled reports whether the timing flag is set on the command or
// any of its parents.
func IsTimingEnabled(cmd *cobra.Command) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}

	for _, flags := range []*pflag.FlagSet{
		cmd.Flags(),
		cmd.PersistentFlags(),
		cmd.InheritedFlags(),
	} {
		if flags.Lookup(TimingFlagName) == nil {
			continue
		}

		enabled, err := flags.GetBool(TimingFlagName)
		if err != nil {
			return false, fmt.Errorf("read flag %q: %w", TimingFlagName, err)
		}

		return enabled, nil
	}

	return false, fmt.Errorf("flag %q not found on command", TimingFlagName)
}

// MaybeTimer returns the timer when timing output is enabled, nil otherwise.
// Notify helpers treat a nil timer as "no timing output".
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	if cmd == nil || tmr == nil {
		return nil
	}

	enabled, err := IsTimingEnabled(cmd)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}
