package live

import "sync"

// Source is anything that signals when its underlying data changed.
type Source interface {
	Subscribe() (<-chan struct{}, func())
}

// Broadcaster fans change signals out to subscribers. Signals coalesce:
// a subscriber that has not consumed the previous signal sees a single pending one.
type Broadcaster struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[uint64]chan struct{})}
}

// Subscribe registers a listener and returns its signal channel and an unsubscribe func.
func (b *Broadcaster) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Notify signals every subscriber without blocking.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
