// Package timer provides a two-level timer for measuring total and
// per-stage durations of pipeline runs.
package timer

import "time"

// Timer measures the total elapsed time of a run and the elapsed time of
// the current stage within it.
type Timer interface {
	// Start begins timing. Calling Start again resets both levels.
	Start()

	// NewStage marks the beginning of a new stage, resetting the stage timer.
	NewStage()

	// GetTiming returns the total elapsed time and the elapsed time of the
	// current stage.
	GetTiming() (total, stage time.Duration)
}

// New creates a Timer backed by the wall clock.
func New() Timer {
	return &clockTimer{}
}

type clockTimer struct {
	start      time.Time
	stageStart time.Time
}

func (t *clockTimer) Start() {
	now := time.Now()
	t.start = now
	t.stageStart = now
}

func (t *clockTimer) NewStage() {
	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	if t.start.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.start), now.Sub(t.stageStart)
}
