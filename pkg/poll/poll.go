// Package poll provides a generic wait-until-ready primitive for
// long-running remote operations that only expose their progress through
// repeated reads.
package poll

import (
	"context"
	"time"

	"github.com/kazz187/blueprint/pkg/cerr"
)

// Config controls how often Until looks up the entity and for how long.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultConfig matches the reference deployment: one lookup per second for
// at most five minutes.
func DefaultConfig() Config {
	return Config{
		Interval: time.Second,
		Timeout:  5 * time.Minute,
	}
}

// Until repeatedly invokes lookup every cfg.Interval until ready reports
// true or cfg.Timeout elapses. The first lookup happens immediately. On
// timeout it returns the last observed entity together with a
// DeadlineExceeded error, so the caller can report what state the entity was
// stuck in. Lookup errors abort polling and propagate.
func Until[T any](ctx context.Context, cfg Config, lookup func(ctx context.Context) (T, error), ready func(T) bool) (T, error) {
	var last T

	deadline := time.NewTimer(cfg.Timeout)
	defer deadline.Stop()
	tick := time.NewTicker(cfg.Interval)
	defer tick.Stop()

	for {
		entity, err := lookup(ctx)
		if err != nil {
			return last, err
		}
		last = entity
		if ready(entity) {
			return entity, nil
		}

		select {
		case <-ctx.Done():
			return last, cerr.NewError(cerr.Canceled, "polling canceled", ctx.Err())
		case <-deadline.C:
			return last, cerr.NewError(cerr.DeadlineExceeded, "entity did not become ready in time", nil)
		case <-tick.C:
		}
	}
}
