package live

import (
	"context"
	"sync"
	"time"
)

// Boundary returns the next instant at which a query's answer changes with
// no write to the store, or false when there is none.
type Boundary func(ctx context.Context, now time.Time) (time.Time, bool)

type timedSource struct {
	src  Source
	now  func() time.Time
	next Boundary
}

// Timed forwards the change signals of src and adds one when each boundary
// passes. The boundary is recomputed after every signal.
func Timed(src Source, now func() time.Time, next Boundary) Source {
	return &timedSource{src: src, now: now, next: next}
}

func (t *timedSource) Subscribe() (<-chan struct{}, func()) {
	in, unsubscribe := t.src.Subscribe()
	out := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go t.run(ctx, in, out)

	var once sync.Once
	return out, func() {
		once.Do(func() {
			cancel()
			unsubscribe()
		})
	}
}

func (t *timedSource) run(ctx context.Context, in <-chan struct{}, out chan<- struct{}) {
	for {
		var fire <-chan time.Time
		var timer *time.Timer
		if at, ok := t.next(ctx, t.now()); ok {
			timer = time.NewTimer(at.Sub(t.now()))
			fire = timer.C
		}

		select {
		case <-ctx.Done():
		case <-in:
		case <-fire:
		}
		if timer != nil {
			timer.Stop()
		}
		if ctx.Err() != nil {
			return
		}

		select {
		case out <- struct{}{}:
		default:
		}
	}
}
