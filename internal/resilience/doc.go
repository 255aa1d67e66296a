// Package resilience groups the fault tolerance helpers used by scheduled races.
//
// The package supports:
//   - Circuit breakers that pause races after repeated failures
//   - Retry logic with exponential backoff and jitter for roster reads
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.RaceJobConfig())
//	err := cb.Execute(func() error {
//	    return runRace(ctx)
//	})
//
//	err = retry.WithBackoff(ctx, retry.RosterConfig(), func() error {
//	    r, err = roster.Load(path)
//	    return err
//	})
package resilience
