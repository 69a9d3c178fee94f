package runner_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/Ubaid1192/authload/internal/runner"
)

// recordingSession appends each executed task name to a shared log.
type recordingSession struct {
	mu    *sync.Mutex
	log   *[]string
	names []string
	delay time.Duration
}

func (s *recordingSession) Tasks() []runner.Task {
	tasks := make([]runner.Task, 0, len(s.names))
	for _, name := range s.names {
		name := name
		tasks = append(tasks, runner.Task{
			Name: name,
			Run: func(ctx context.Context) {
				if s.delay > 0 {
					select {
					case <-time.After(s.delay):
					case <-ctx.Done():
					}
				}
				s.mu.Lock()
				*s.log = append(*s.log, name)
				s.mu.Unlock()
			},
		})
	}
	return tasks
}

type factoryFunc func(user int) runner.Session

func (f factoryFunc) New(user int) runner.Session { return f(user) }

// TestRunnerExecutesTasksInOrder ensures a session's tasks run sequentially
// and the sequence repeats whole each pass.
func TestRunnerExecutesTasksInOrder(t *testing.T) {
	var mu sync.Mutex
	var log []string
	r := runner.New(runner.Options{
		Users:      1,
		Iterations: 2,
		Factory: factoryFunc(func(user int) runner.Session {
			return &recordingSession{mu: &mu, log: &log, names: []string{"register", "login-email", "login-username"}}
		}),
	})

	res := r.Run(context.Background())

	want := []string{"register", "login-email", "login-username", "register", "login-email", "login-username"}
	if len(log) != len(want) {
		t.Fatalf("executed %d tasks, want %d: %v", len(log), len(want), log)
	}
	for i, name := range want {
		if log[i] != name {
			t.Fatalf("task[%d] = %q, want %q (full: %v)", i, log[i], name, log)
		}
	}
	if res.Scenarios != int64(len(want)) {
		t.Errorf("Scenarios = %d, want %d", res.Scenarios, len(want))
	}
}

// TestRunnerHonorsIterations ensures each user runs exactly the configured
// number of passes.
func TestRunnerHonorsIterations(t *testing.T) {
	var mu sync.Mutex
	var log []string
	r := runner.New(runner.Options{
		Users:      3,
		Iterations: 2,
		Factory: factoryFunc(func(user int) runner.Session {
			return &recordingSession{mu: &mu, log: &log, names: []string{"a", "b"}}
		}),
	})

	res := r.Run(context.Background())

	if res.Scenarios != 12 {
		t.Fatalf("Scenarios = %d, want 12 (3 users x 2 passes x 2 tasks)", res.Scenarios)
	}
	if len(log) != 12 {
		t.Fatalf("executed %d tasks, want 12", len(log))
	}
}

// TestRunnerHonorsDuration ensures the duration cap stops unlimited sessions.
func TestRunnerHonorsDuration(t *testing.T) {
	var mu sync.Mutex
	var log []string
	r := runner.New(runner.Options{
		Users:    10,
		Duration: 50 * time.Millisecond,
		Factory: factoryFunc(func(user int) runner.Session {
			return &recordingSession{mu: &mu, log: &log, names: []string{"a"}, delay: 5 * time.Millisecond}
		}),
	})

	start := time.Now()
	res := r.Run(context.Background())
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond || elapsed > 250*time.Millisecond {
		// allow some scheduling fudge but not extremely off
		t.Fatalf("duration enforcement off: %s", elapsed)
	}
	if res.Duration <= 0 {
		t.Fatalf("result duration not recorded")
	}
	if res.Scenarios <= 0 {
		t.Fatalf("expected some scenarios executed")
	}
}

// TestRunnerWaitsAfterEveryTask ensures the configured pause separates task
// starts within a pass.
func TestRunnerWaitsAfterEveryTask(t *testing.T) {
	var mu sync.Mutex
	var starts []time.Time
	wait := 30 * time.Millisecond

	r := runner.New(runner.Options{
		Users:      1,
		Iterations: 1,
		Wait:       wait,
		Factory: factoryFunc(func(user int) runner.Session {
			return taskListSession{
				runner.Task{Name: "first", Run: func(ctx context.Context) {
					mu.Lock()
					starts = append(starts, time.Now())
					mu.Unlock()
				}},
				runner.Task{Name: "second", Run: func(ctx context.Context) {
					mu.Lock()
					starts = append(starts, time.Now())
					mu.Unlock()
				}},
			}
		}),
	})

	begin := time.Now()
	r.Run(context.Background())
	elapsed := time.Since(begin)

	if len(starts) != 2 {
		t.Fatalf("executed %d tasks, want 2", len(starts))
	}
	if gap := starts[1].Sub(starts[0]); gap < wait {
		t.Errorf("gap between tasks = %v, want >= %v", gap, wait)
	}
	// Pause also follows the final task of a pass.
	if elapsed < 2*wait {
		t.Errorf("total elapsed = %v, want >= %v", elapsed, 2*wait)
	}
}

type taskListSession []runner.Task

func (s taskListSession) Tasks() []runner.Task { return s }

// TestRateLimiterCapsThroughput ensures the shared limiter restricts scenario
// starts per second.
func TestRateLimiterCapsThroughput(t *testing.T) {
	var calls int64
	rateLimit := 100 // scenario starts per second theoretical maximum
	duration := 100 * time.Millisecond

	r := runner.New(runner.Options{
		Users:    20,
		Duration: duration,
		Rate:     rateLimit,
		Factory: factoryFunc(func(user int) runner.Session {
			return taskListSession{
				runner.Task{Name: "a", Run: func(ctx context.Context) { atomic.AddInt64(&calls, 1) }},
			}
		}),
		LimiterFactory: func(rps int) *rate.Limiter { return rate.NewLimiter(rate.Limit(rps), 1) },
	})

	res := r.Run(context.Background())

	// expected upper bound ~ rateLimit * (duration seconds)
	maxExpected := int64(float64(rateLimit) * (float64(duration) / float64(time.Second)) * 1.20) // 20% slack
	if res.Scenarios > maxExpected {
		t.Fatalf("rate limiter exceeded: scenarios=%d max=%d", res.Scenarios, maxExpected)
	}
	if calls != res.Scenarios {
		t.Fatalf("calls mismatch: %d vs %d", calls, res.Scenarios)
	}
}

// TestRunnerStopsOnCancel ensures an external cancel ends unlimited sessions.
func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int64
	r := runner.New(runner.Options{
		Users: 4,
		Factory: factoryFunc(func(user int) runner.Session {
			return taskListSession{
				runner.Task{Name: "a", Run: func(ctx context.Context) { atomic.AddInt64(&calls, 1) }},
			}
		}),
	})

	time.AfterFunc(30*time.Millisecond, cancel)

	done := make(chan runner.Result, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case res := <-done:
		if res.Scenarios <= 0 {
			t.Fatalf("expected some scenarios before cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

// TestRunnerReusesSessionAcrossPasses ensures one user keeps a single session
// instance so state carries between passes.
func TestRunnerReusesSessionAcrossPasses(t *testing.T) {
	var created int64
	r := runner.New(runner.Options{
		Users:      1,
		Iterations: 5,
		Factory: factoryFunc(func(user int) runner.Session {
			atomic.AddInt64(&created, 1)
			return taskListSession{
				runner.Task{Name: "a", Run: func(ctx context.Context) {}},
			}
		}),
	})

	r.Run(context.Background())

	if created != 1 {
		t.Errorf("sessions created = %d, want 1", created)
	}
}
