package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Result captures execution summary.
type Result struct {
	Scenarios int64
	Duration  time.Duration
}

// Runner drives concurrent user sessions through their scenario sequences.
type Runner struct {
	opt     Options
	limiter *rate.Limiter
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt, limiter: opt.LimiterFactory(opt.Rate)}
}

func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()
	var scenarios int64

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.opt.Duration > 0 {
		deadlineCtx, deadlineCancel := context.WithTimeout(ctx, r.opt.Duration)
		ctx = deadlineCtx
		defer deadlineCancel()
	}

	var wg sync.WaitGroup
	wg.Add(r.opt.Users)
	for i := 0; i < r.opt.Users; i++ {
		go func(user int) {
			defer wg.Done()
			r.runSession(ctx, user, &scenarios)
		}(i)
	}
	wg.Wait()

	return Result{
		Scenarios: atomic.LoadInt64(&scenarios),
		Duration:  time.Since(start),
	}
}

// runSession cycles one user's session through its task sequence until the
// iteration cap or context cancellation. Tasks always execute in order and a
// pass never starts mid-sequence.
func (r *Runner) runSession(ctx context.Context, user int, scenarios *int64) {
	if r.opt.Factory == nil {
		return
	}
	session := r.opt.Factory.New(user)
	if session == nil {
		return
	}
	tasks := session.Tasks()
	if len(tasks) == 0 {
		return
	}

	for pass := 0; r.opt.Iterations == 0 || pass < r.opt.Iterations; pass++ {
		for _, task := range tasks {
			if ctx.Err() != nil {
				return
			}
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					return
				}
			}
			task.Run(ctx)
			atomic.AddInt64(scenarios, 1)
			if !r.pause(ctx) {
				return
			}
		}
	}
}

// pause sleeps for the configured wait after a task. Returns false when the
// context ends first.
func (r *Runner) pause(ctx context.Context) bool {
	if r.opt.Wait <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(r.opt.Wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
