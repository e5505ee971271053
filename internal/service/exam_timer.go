package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
	TimerExpired TimerState = "expired"
)

type TimerSnapshot struct {
	State            TimerState
	RemainingSeconds int
	TotalSeconds     int
	Display          string
}

// ExamTimer is a countdown for one exam session. While running it ticks once
// per interval on its own goroutine, and that tick is the only writer of the
// remaining time. Every Start gets a new generation, so ticks from a run that
// was paused or reset are dropped.
type ExamTimer struct {
	mu         sync.Mutex
	name       string
	state      TimerState
	total      int
	remaining  int
	generation uint64
	interval   time.Duration
	cancel     chan struct{}
}

func NewExamTimer(name string, totalSeconds int) *ExamTimer {
	return newExamTimer(name, totalSeconds, time.Second)
}

func newExamTimer(name string, totalSeconds int, interval time.Duration) *ExamTimer {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return &ExamTimer{
		name:      name,
		state:     TimerIdle,
		total:     totalSeconds,
		remaining: totalSeconds,
		interval:  interval,
	}
}

// Start is a no-op when the timer is already running or has no time left.
func (t *ExamTimer) Start() TimerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == TimerRunning || t.remaining <= 0 {
		return t.snapshotLocked()
	}
	t.state = TimerRunning
	t.generation++
	t.cancel = make(chan struct{})
	go t.run(t.generation, t.cancel)

	log.Debug().Str("session", t.name).Int("remaining", t.remaining).Msg("Exam timer started")
	return t.snapshotLocked()
}

// Pause is a no-op unless the timer is running.
func (t *ExamTimer) Pause() TimerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TimerRunning {
		return t.snapshotLocked()
	}
	t.state = TimerPaused
	t.stopLocked()

	log.Debug().Str("session", t.name).Int("remaining", t.remaining).Msg("Exam timer paused")
	return t.snapshotLocked()
}

// Reset cancels any pending tick and returns the timer to idle with
// totalSeconds remaining.
func (t *ExamTimer) Reset(totalSeconds int) TimerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if totalSeconds < 0 {
		totalSeconds = 0
	}
	t.stopLocked()
	t.state = TimerIdle
	t.total = totalSeconds
	t.remaining = totalSeconds

	log.Debug().Str("session", t.name).Int("total", totalSeconds).Msg("Exam timer reset")
	return t.snapshotLocked()
}

// Stop releases the ticking goroutine. The timer keeps its state.
func (t *ExamTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	if t.state == TimerRunning {
		t.state = TimerPaused
	}
}

func (t *ExamTimer) Snapshot() TimerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *ExamTimer) run(gen uint64, cancel <-chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !t.tick(gen) {
				return
			}
		case <-cancel:
			return
		}
	}
}

// tick decrements the remaining time by one second. It reports whether the
// run identified by gen should keep ticking.
func (t *ExamTimer) tick(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation || t.state != TimerRunning {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return true
	}
	t.remaining = 0
	t.state = TimerExpired
	t.cancel = nil
	log.Info().Str("session", t.name).Msg("Exam time is up")
	return false
}

func (t *ExamTimer) stopLocked() {
	t.generation++
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
}

func (t *ExamTimer) snapshotLocked() TimerSnapshot {
	return TimerSnapshot{
		State:            t.state,
		RemainingSeconds: t.remaining,
		TotalSeconds:     t.total,
		Display:          FormatClock(t.remaining),
	}
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
