package live

import (
	"context"
	"sync"
)

// QueryFunc produces the current value of a live query.
type QueryFunc[T any] func(ctx context.Context) (T, error)

// Result is one evaluation of a live query.
type Result[T any] struct {
	Value T
	Err   error
}

// Subscription re-evaluates a query every time its source changes and
// delivers only the most recent result. Undelivered results are replaced, never queued.
type Subscription[T any] struct {
	updates chan Result[T]
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Watch starts a subscription. The query runs once immediately and again after
// every change signal from source, until ctx is done or Cancel is called.
func Watch[T any](ctx context.Context, source Source, query QueryFunc[T]) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		updates: make(chan Result[T], 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	changes, unsubscribe := source.Subscribe()
	go s.run(ctx, changes, unsubscribe, query)
	return s
}

func (s *Subscription[T]) run(ctx context.Context, changes <-chan struct{}, unsubscribe func(), query QueryFunc[T]) {
	defer close(s.done)
	defer close(s.updates)
	defer unsubscribe()

	for {
		value, err := query(ctx)
		if ctx.Err() != nil {
			return
		}
		s.deliver(Result[T]{Value: value, Err: err})

		select {
		case <-ctx.Done():
			return
		case <-changes:
		}
	}
}

// deliver replaces any unread result with r. run is the only sender, so the
// second send always finds room.
func (s *Subscription[T]) deliver(r Result[T]) {
	select {
	case s.updates <- r:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- r
}

// Updates returns the result channel. It is closed when the subscription ends.
func (s *Subscription[T]) Updates() <-chan Result[T] {
	return s.updates
}

// Cancel stops the subscription and discards any result not yet read.
// It is safe to call more than once.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
		for range s.updates {
		}
	})
}

// Done is closed once the subscription has stopped evaluating.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}
