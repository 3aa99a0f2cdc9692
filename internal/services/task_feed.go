package services

import (
	"context"
	"strings"
	"sync"

	"todo-engine/internal/domain"
	"todo-engine/internal/live"
)

// FeedUpdate is one result delivered by a TaskFeed, tagged with the view that produced it.
type FeedUpdate struct {
	Filter domain.Filter
	Search string
	Tasks  []domain.Task
	Err    error
}

// TaskFeed drives the home list: a blank search shows the current filter,
// anything else shows search results. Each change cancels the previous live
// query, and results from a superseded query are never delivered.
type TaskFeed struct {
	ctx   context.Context
	query QueryService

	mu         sync.Mutex
	filter     domain.Filter
	search     string
	generation uint64
	current    *live.Subscription[[]domain.Task]
	out        chan FeedUpdate
	closed     bool
}

// NewTaskFeed starts a feed showing filter.
func NewTaskFeed(ctx context.Context, query QueryService, filter domain.Filter) *TaskFeed {
	f := &TaskFeed{
		ctx:    ctx,
		query:  query,
		filter: filter,
		out:    make(chan FeedUpdate, 1),
	}
	f.mu.Lock()
	f.restartLocked()
	f.mu.Unlock()
	return f
}

// Updates returns the channel of results. It is closed by Close.
func (f *TaskFeed) Updates() <-chan FeedUpdate {
	return f.out
}

func (f *TaskFeed) SetFilter(filter domain.Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || filter == f.filter {
		return
	}
	f.filter = filter
	f.restartLocked()
}

func (f *TaskFeed) SetSearch(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text = strings.TrimSpace(text)
	if f.closed || text == f.search {
		return
	}
	f.search = text
	f.restartLocked()
}

// Current returns the active filter and search text.
func (f *TaskFeed) Current() (domain.Filter, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter, f.search
}

// Close stops the live query and closes Updates. It is safe to call more than once.
func (f *TaskFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.generation++
	if f.current != nil {
		f.current.Cancel()
		f.current = nil
	}
	close(f.out)
}

func (f *TaskFeed) restartLocked() {
	if f.current != nil {
		f.current.Cancel()
	}
	f.generation++
	select {
	case <-f.out:
	default:
	}

	filter, search := f.filter, f.search
	var sub *live.Subscription[[]domain.Task]
	if search == "" {
		sub = f.query.WatchTasks(f.ctx, filter)
	} else {
		sub = f.query.WatchSearch(f.ctx, search)
	}
	f.current = sub

	go f.forward(f.generation, filter, search, sub)
}

func (f *TaskFeed) forward(generation uint64, filter domain.Filter, search string, sub *live.Subscription[[]domain.Task]) {
	for result := range sub.Updates() {
		f.mu.Lock()
		if f.closed || generation != f.generation {
			f.mu.Unlock()
			return
		}
		update := FeedUpdate{Filter: filter, Search: search, Tasks: result.Value, Err: result.Err}
		// Senders hold mu, so after draining the buffered slot the send cannot block.
		select {
		case <-f.out:
		default:
		}
		f.out <- update
		f.mu.Unlock()
	}
}
