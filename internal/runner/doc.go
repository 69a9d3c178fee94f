// Package runner provides the core load test execution engine for authload.
//
// The runner package orchestrates concurrent user sessions with support for:
//   - Configurable user counts
//   - Ordered scenario sequences with a pause after every task
//   - Rate limiting (scenario starts per second)
//   - Duration-based and iteration-based test termination
//
// # Basic Usage
//
// Create a runner with options and a session factory:
//
//	opts := runner.Options{
//		Users:      10,
//		Iterations: 100,
//		Duration:   time.Minute,
//		Wait:       time.Second,
//		Factory:    myFactory,
//	}
//	r := runner.New(opts)
//	result := r.Run(ctx)
//
// # Sessions
//
// The [Factory] interface creates one [Session] per simulated user, and a
// session exposes its ordered scenario steps as [Task] values:
//
//	type Session interface {
//		Tasks() []Task
//	}
//
// Each user cycles through its session's tasks in order. A session keeps its
// state across passes, so a task can depend on what an earlier task produced.
//
// # Rate Limiting
//
// A shared rate limiter paces scenario starts across all users. Inject a
// custom limiter through [Options.LimiterFactory] to control pacing in tests.
package runner
