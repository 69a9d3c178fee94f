package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Task is one named scenario step in a session's sequence.
type Task struct {
	Name string
	Run  func(ctx context.Context)
}

// Session supplies the ordered scenario sequence for one simulated user.
// The same session instance cycles through its tasks for every pass, so
// state set by an earlier task is visible to later ones.
type Session interface {
	Tasks() []Task
}

// Factory creates one Session per simulated user.
type Factory interface {
	New(user int) Session
}

// Options configure the Runner.
type Options struct {
	Users          int                         // number of concurrent simulated users
	Iterations     int                         // sequence passes per user (0 means unlimited)
	Duration       time.Duration               // overall time limit (0 means no duration cap)
	Wait           time.Duration               // pause after every task
	Rate           int                         // scenario starts per second across all users (0 means unpaced)
	Factory        Factory                     // session factory (required)
	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Users <= 0 {
		o.Users = 1
	}
	if o.Iterations < 0 {
		o.Iterations = 0
	}
	if o.Wait < 0 {
		o.Wait = 0
	}
	if o.Rate < 0 {
		o.Rate = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}
