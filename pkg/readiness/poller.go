package readiness

import (
	"context"
	"fmt"
	"time"
)

// DefaultReportInterval is the attempt interval at which progress is reported.
const DefaultReportInterval = 10

// Probe checks whether a dependency can accept traffic. A transient failure is
// reported as an error; polling continues and the last error is carried into
// the exhaustion error.
type Probe func(ctx context.Context) (bool, error)

// Dependency describes a service whose availability gates the deployment.
type Dependency struct {
	// Name identifies the dependency in progress output and errors.
	Name string
	// Hard marks a dependency whose unavailability must abort the run.
	Hard bool
	// Probe decides readiness for a single attempt.
	Probe Probe
	// Attempts is the total attempt budget. Values below 1 are treated as 1.
	Attempts int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
	// LogHint is a command the user can run to inspect the dependency's logs.
	// It is included in exhaustion errors for hard dependencies.
	LogHint string
}

// Options configure progress reporting during polling.
type Options struct {
	// ReportEvery controls how often OnProgress fires, in attempts.
	// Zero means DefaultReportInterval.
	ReportEvery int
	// OnProgress is invoked after every ReportEvery-th unsuccessful attempt.
	OnProgress func(dep Dependency, attempt int)
	// OnStart is invoked by WaitForAll before each dependency is checked.
	OnStart func(dep Dependency)
}

// Wait blocks until dep's probe reports ready or the attempt budget is spent.
//
// The probe is invoked up to dep.Attempts times with dep.Delay between
// attempts. A ready result returns immediately with no further delay. An
// always-unready probe results in exactly dep.Attempts invocations. Context
// cancellation aborts the wait with an error wrapping ErrCancelled.
func Wait(ctx context.Context, dep Dependency, opts Options) error {
	attempts := dep.Attempts
	if attempts < 1 {
		attempts = 1
	}

	reportEvery := opts.ReportEvery
	if reportEvery < 1 {
		reportEvery = DefaultReportInterval
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		ready, err := dep.Probe(ctx)
		if err != nil {
			lastErr = err
		}

		if ready && err == nil {
			return nil
		}

		if opts.OnProgress != nil && attempt%reportEvery == 0 {
			opts.OnProgress(dep, attempt)
		}

		if attempt == attempts {
			break
		}

		err = sleep(ctx, dep.Delay)
		if err != nil {
			return fmt.Errorf("waiting for %s: %w", dep.Name, err)
		}
	}

	return exhaustionError(dep, attempts, lastErr)
}

// Warning records a soft dependency that never became ready.
type Warning struct {
	Dependency string
	Err        error
}

// Report summarizes a sequential readiness pass over a dependency list.
type Report struct {
	// Ready lists dependencies that became ready, in check order.
	Ready []string
	// Warnings lists soft dependencies that exhausted their attempt budget.
	Warnings []Warning
}

// CompletedWithIssues reports whether the pass finished but left soft
// dependencies unready.
func (r Report) CompletedWithIssues() bool {
	return len(r.Warnings) > 0
}

// WaitForAll checks each dependency sequentially, in order.
//
// A hard dependency that exhausts its budget aborts the pass and returns the
// error alongside the partial report. A soft dependency failure is recorded as
// a warning and the pass continues with the next dependency.
func WaitForAll(ctx context.Context, deps []Dependency, opts Options) (Report, error) {
	var report Report

	for _, dep := range deps {
		if opts.OnStart != nil {
			opts.OnStart(dep)
		}

		err := Wait(ctx, dep, opts)
		if err == nil {
			report.Ready = append(report.Ready, dep.Name)

			continue
		}

		if dep.Hard || ctx.Err() != nil {
			return report, err
		}

		report.Warnings = append(report.Warnings, Warning{Dependency: dep.Name, Err: err})
	}

	return report, nil
}

// sleep waits for the given duration or until the context is cancelled.
func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		// Still honor cancellation between attempts.
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		default:
			return nil
		}
	}

	waitTimer := time.NewTimer(delay)
	defer waitTimer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	case <-waitTimer.C:
		return nil
	}
}

func exhaustionError(dep Dependency, attempts int, lastErr error) error {
	msg := fmt.Sprintf("dependency %q not ready after %d attempts", dep.Name, attempts)
	if dep.LogHint != "" {
		msg += fmt.Sprintf(" (inspect logs with %q)", dep.LogHint)
	}

	if lastErr != nil {
		return fmt.Errorf("%s: %w: last error: %w", msg, ErrAttemptsExhausted, lastErr)
	}

	return fmt.Errorf("%s: %w", msg, ErrAttemptsExhausted)
}
