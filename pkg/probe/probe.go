// Package probe runs startup checks and decides whether the server may start.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout bounds a probe that sets no Timeout of its own.
const DefaultTimeout = 5 * time.Second

// CheckFunc returns nil when the check passes.
type CheckFunc func(ctx context.Context) error

// Probe is a single startup check. A failing critical probe blocks startup;
// any other failure only degrades the service.
type Probe struct {
	Name     string
	Check    CheckFunc
	Critical bool
	Timeout  time.Duration
}

// Status is the outcome class of a probe.
type Status string

const (
	StatusPass     Status = "PASS"
	StatusDegraded Status = "WARN"
	StatusFail     Status = "FAIL"
)

// Result holds the outcome of a single probe.
type Result struct {
	Probe    Probe
	Error    error
	Duration time.Duration
}

// Status classifies r.
func (r Result) Status() Status {
	switch {
	case r.Error == nil:
		return StatusPass
	case r.Probe.Critical:
		return StatusFail
	default:
		return StatusDegraded
	}
}

// Run executes the probes concurrently. Results keep the input order.
func Run(ctx context.Context, probes []Probe) []Result {
	results := make([]Result, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			timeout := p.Timeout
			if timeout <= 0 {
				timeout = DefaultTimeout
			}
			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			err := p.Check(checkCtx)
			results[i] = Result{Probe: p, Error: err, Duration: time.Since(start)}
		}()
	}
	wg.Wait()
	return results
}

// AnalyzeResults logs every result and joins the critical failures.
func AnalyzeResults(results []Result) error {
	var criticalErrors []error
	degraded := 0

	slog.Info("Startup Checks Summary", "probes", len(results))
	for _, r := range results {
		msg := fmt.Sprintf("[%s] %-24s (%v)", r.Status(), r.Probe.Name, r.Duration.Round(time.Millisecond))
		switch r.Status() {
		case StatusPass:
			slog.Info(msg)
		case StatusDegraded:
			degraded++
			slog.Warn(msg, "error", r.Error)
		case StatusFail:
			slog.Error(msg, "error", r.Error)
			criticalErrors = append(criticalErrors, fmt.Errorf("%s: %w", r.Probe.Name, r.Error))
		}
	}
	if degraded > 0 {
		slog.Warn("Starting with reduced functionality", "degraded", degraded)
	}
	return errors.Join(criticalErrors...)
}
