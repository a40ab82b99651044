package health

import (
	"context"
	"sync"
	"time"
)

// CheckFunc performs a health check for one component. It returns nil
// when the component is healthy.
type CheckFunc func(ctx context.Context) error

// CheckResult represents the result of a single health check.
type CheckResult struct {
	// Status is "ok" or "unhealthy".
	Status string `json:"status"`

	// Message provides context for an unhealthy status.
	Message string `json:"message,omitempty"`

	// Duration is how long the check took.
	Duration time.Duration `json:"duration_ms,omitempty"`
}

// Status represents the aggregated health of the process.
type Status struct {
	// Status is "ok", "ready", or "degraded".
	Status string `json:"status"`

	// Checks contains the per-component results (readiness only).
	Checks map[string]CheckResult `json:"checks,omitempty"`

	// Timestamp is when the health check was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Checker manages health checks for registered components.
type Checker struct {
	mu           sync.RWMutex
	checks       map[string]CheckFunc
	checkTimeout time.Duration
}

// New creates a health checker. A zero timeout defaults to 5 seconds
// per check.
func New(checkTimeout time.Duration) *Checker {
	if checkTimeout == 0 {
		checkTimeout = 5 * time.Second
	}
	return &Checker{
		checks:       make(map[string]CheckFunc),
		checkTimeout: checkTimeout,
	}
}

// RegisterCheck registers a health check for a named component,
// replacing any existing check with the same name.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = check
}

// Liveness reports that the process is running. It never fails.
func (c *Checker) Liveness(ctx context.Context) Status {
	return Status{Status: "ok", Timestamp: time.Now()}
}

// Readiness runs every registered check and aggregates the results.
// Any unhealthy component degrades the overall status.
func (c *Checker) Readiness(ctx context.Context) Status {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	status := "ready"
	for name, check := range checks {
		result := c.runCheck(ctx, check)
		results[name] = result
		if result.Status == "unhealthy" {
			status = "degraded"
		}
	}

	return Status{
		Status:    status,
		Checks:    results,
		Timestamp: time.Now(),
	}
}

// runCheck executes a single check bounded by the check timeout.
func (c *Checker) runCheck(ctx context.Context, check CheckFunc) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	start := time.Now()
	errCh := make(chan error, 1)
	go func() {
		errCh <- check(checkCtx)
	}()

	select {
	case err := <-errCh:
		duration := time.Since(start)
		if err != nil {
			return CheckResult{Status: "unhealthy", Message: err.Error(), Duration: duration}
		}
		return CheckResult{Status: "ok", Duration: duration}
	case <-checkCtx.Done():
		return CheckResult{Status: "unhealthy", Message: "health check timeout", Duration: time.Since(start)}
	}
}
