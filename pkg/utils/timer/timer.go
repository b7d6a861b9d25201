// Package timer provides simple stage-aware timing for CLI activities.
package timer

import (
	"sync"
	"time"
)

// Timer tracks the total runtime of a command and the runtime of its current stage.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()
	// NewStage marks the beginning of a new stage, resetting the stage clock.
	NewStage()
	// GetTiming returns the total elapsed time and the elapsed time of the current stage.
	GetTiming() (total, stage time.Duration)
}

// New creates a Timer. The timer is not running until Start is called.
func New() Timer {
	return &stageTimer{}
}

type stageTimer struct {
	mu         sync.Mutex
	startedAt  time.Time
	stageStart time.Time
}

func (t *stageTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.startedAt = now
	t.stageStart = now
}

func (t *stageTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = time.Now()
}

func (t *stageTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startedAt.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.startedAt).Round(time.Millisecond),
		now.Sub(t.stageStart).Round(time.Millisecond)
}
