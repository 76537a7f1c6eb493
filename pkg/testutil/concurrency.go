package testutil

import (
	"context"
	"sync"
	"testing"
	"time"
)

// ConcurrencyTestConfig holds parameters for concurrency tests.
type ConcurrencyTestConfig struct {
	// NumGoroutines defaults to 20.
	NumGoroutines int
	// Timeout bounds each operation; exceeding it counts as a timeout. Defaults to 3s.
	Timeout time.Duration
}

type ConcurrencyTestResult struct {
	SuccessCount int
	ErrorCount   int
	// TimeoutCount counts operations that never finished, usually a lock cycle.
	TimeoutCount int
	MaxDuration  time.Duration
}

// RunConcurrent runs op from NumGoroutines goroutines at once and tallies the outcomes.
//
//	result := testutil.RunConcurrent(ctx, t, testutil.ConcurrencyTestConfig{NumGoroutines: 10},
//	    func(ctx context.Context, i int) error {
//	        _, err := ps.Create(ctx, mproject.Project{Title: fmt.Sprint(i)})
//	        return err
//	    })
//	require.Zero(t, result.TimeoutCount)
func RunConcurrent(
	ctx context.Context,
	t *testing.T,
	config ConcurrencyTestConfig,
	op func(ctx context.Context, i int) error,
) ConcurrencyTestResult {
	t.Helper()

	if config.NumGoroutines == 0 {
		config.NumGoroutines = 20
	}
	if config.Timeout == 0 {
		config.Timeout = 3 * time.Second
	}

	type opResult struct {
		timeout  bool
		duration time.Duration
		err      error
	}

	results := make(chan opResult, config.NumGoroutines)
	var wg sync.WaitGroup
	for i := 0; i < config.NumGoroutines; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()

			opCtx, cancel := context.WithTimeout(ctx, config.Timeout)
			defer cancel()

			start := time.Now()
			done := make(chan error, 1)
			go func() { done <- op(opCtx, index) }()

			select {
			case err := <-done:
				results <- opResult{duration: time.Since(start), err: err}
			case <-opCtx.Done():
				results <- opResult{timeout: true, duration: time.Since(start), err: opCtx.Err()}
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var res ConcurrencyTestResult
	for r := range results {
		switch {
		case r.timeout:
			res.TimeoutCount++
			t.Logf("operation timed out after %v", r.duration)
		case r.err == nil:
			res.SuccessCount++
		default:
			res.ErrorCount++
			t.Logf("operation failed: %v", r.err)
		}
		if r.duration > res.MaxDuration {
			res.MaxDuration = r.duration
		}
	}
	return res
}
