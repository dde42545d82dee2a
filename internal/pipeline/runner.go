// Package pipeline orchestrates chunked processing runs: it owns the
// unit loop, progress accounting, cooperative cancellation and failure
// aggregation for the transcription, paraphrasing and synthesis paths.
package pipeline

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lectureflow/lectureflow/internal/metrics"
)

// ErrRunInProgress is returned by Start when a run is already active on
// the same runner. Runs never queue; a second invocation fails fast.
var ErrRunInProgress = errors.New("a run is already in progress")

// State describes a runner's lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ProgressFunc receives monotonically non-decreasing progress fractions
// in [0.0, 1.0] during a run.
type ProgressFunc func(fraction float64)

// CompletionFunc receives the run's final text or output path and the
// elapsed wall-clock time. Failures arrive on the same channel as an
// "Error: "-prefixed message; downstream consumers key off that literal
// prefix.
type CompletionFunc func(result string, elapsed time.Duration)

// runner is the state machine shared by the concrete pipeline runners.
// The worker goroutine owns all run state while Running; the cancellation
// flag is the one field the caller writes from outside, and it only ever
// transitions false to true during a run.
type runner struct {
	running   atomic.Bool
	cancelled atomic.Bool
	outcome   atomic.Int32
}

// begin transitions Idle -> Running, failing fast when already Running.
func (r *runner) begin() error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	r.cancelled.Store(false)
	return nil
}

// finish records the terminal state and returns the runner to Idle.
func (r *runner) finish(s State) {
	r.outcome.Store(int32(s))
	r.running.Store(false)
}

// IsActive reports whether a run is currently executing.
func (r *runner) IsActive() bool {
	return r.running.Load()
}

// Cancel requests cooperative cancellation of the active run. It takes
// effect at the next unit boundary; an in-flight external call is not
// interrupted. Calling Cancel with no active run is a no-op.
func (r *runner) Cancel() {
	if r.running.Load() {
		r.cancelled.Store(true)
	}
}

// Outcome returns the terminal state of the most recent run.
func (r *runner) Outcome() State {
	return State(r.outcome.Load())
}

func (r *runner) isCancelled() bool {
	return r.cancelled.Load()
}

// emitProgress forwards progress updates when a notifier is configured.
func emitProgress(cb ProgressFunc, fraction float64) {
	if cb != nil {
		cb(fraction)
	}
}

// emitCompletion forwards the terminal notification when configured.
func emitCompletion(cb CompletionFunc, result string, elapsed time.Duration) {
	if cb != nil {
		cb(result, elapsed)
	}
}

// errorResult serializes a failure into the boundary prefix convention.
func errorResult(err error) string {
	return "Error: " + err.Error()
}

// recoverToFailure converts a panic in a worker goroutine into a Failed
// completion so nothing ever propagates to the caller's goroutine.
func (r *runner) recoverToFailure(onProgress ProgressFunc, onDone CompletionFunc) {
	if rec := recover(); rec != nil {
		emitProgress(onProgress, 1.0)
		r.finish(StateFailed)
		emitCompletion(onDone, errorResult(fmt.Errorf("%v", rec)), 0)
	}
}

// completeRun finishes the run successfully and delivers the result.
func (r *runner) completeRun(o observer, onDone CompletionFunc, result string, start time.Time) {
	elapsed := time.Since(start)
	r.finish(StateCompleted)
	o.runFinished(StateCompleted, elapsed)
	emitCompletion(onDone, result, elapsed)
}

// failRun finishes the run in failure. Progress is driven to 1.0 first
// so observers never see a run end mid-bar, and the elapsed time is
// zeroed because no usable output was produced.
func (r *runner) failRun(o observer, onProgress ProgressFunc, onDone CompletionFunc, err error, start time.Time) {
	emitProgress(onProgress, 1.0)
	r.finish(StateFailed)
	o.runFinished(StateFailed, time.Since(start))
	emitCompletion(onDone, errorResult(err), 0)
}

// cancelRun finishes a cancelled run. Partial output is discarded, so
// the result is empty and progress is left wherever it was.
func (r *runner) cancelRun(o observer, onDone CompletionFunc, start time.Time) {
	r.finish(StateCancelled)
	o.runFinished(StateCancelled, time.Since(start))
	emitCompletion(onDone, "", 0)
}

// observer records run and unit counters for one pipeline. A nil Metrics
// pointer disables recording; tests construct runners without a registry.
type observer struct {
	m        *metrics.Metrics
	pipeline string
}

func (o observer) runStarted() {
	if o.m != nil {
		o.m.RunsStarted.WithLabelValues(o.pipeline).Inc()
	}
}

func (o observer) runFinished(s State, elapsed time.Duration) {
	if o.m == nil {
		return
	}
	switch s {
	case StateCompleted:
		o.m.RunsCompleted.WithLabelValues(o.pipeline).Inc()
	case StateFailed:
		o.m.RunsFailed.WithLabelValues(o.pipeline).Inc()
	case StateCancelled:
		o.m.RunsCancelled.WithLabelValues(o.pipeline).Inc()
	}
	o.m.RunDuration.WithLabelValues(o.pipeline).Observe(elapsed.Seconds())
}

func (o observer) unitsPlanned(n int) {
	if o.m != nil {
		o.m.UnitsPlanned.WithLabelValues(o.pipeline).Add(float64(n))
	}
}

func (o observer) unitProcessed() {
	if o.m != nil {
		o.m.UnitsProcessed.WithLabelValues(o.pipeline).Inc()
	}
}

func (o observer) unitFailed() {
	if o.m != nil {
		o.m.UnitsFailed.WithLabelValues(o.pipeline).Inc()
	}
}
