package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Trigger describes when a job fires: once at First, or at First and every Every after that.
type Trigger struct {
	First time.Time
	Every time.Duration
}

// Once fires a single time at at.
func Once(at time.Time) Trigger {
	return Trigger{First: at}
}

// Periodic fires at first and then every period.
func Periodic(first time.Time, every time.Duration) Trigger {
	return Trigger{First: first, Every: every}
}

// OneShot reports whether the trigger fires only once.
func (t Trigger) OneShot() bool {
	return t.Every <= 0
}

func (t Trigger) schedule() cron.Schedule {
	if t.OneShot() {
		return &onceAt{at: t.First}
	}
	return startingEvery{first: t.First, every: t.Every}
}

// onceAt yields its moment exactly once, or t itself when that moment has
// already passed. Afterwards it returns the zero time, which cron treats as never.
// cron only calls Next from its run goroutine.
type onceAt struct {
	at   time.Time
	used bool
}

func (s *onceAt) Next(t time.Time) time.Time {
	if s.used {
		return time.Time{}
	}
	s.used = true
	if t.Before(s.at) {
		return s.at
	}
	return t
}

// startingEvery is cron.Every anchored at a wall-clock instant instead of the time it was added.
type startingEvery struct {
	first time.Time
	every time.Duration
}

func (s startingEvery) Next(t time.Time) time.Time {
	if t.Before(s.first) {
		return s.first
	}
	n := t.Sub(s.first)/s.every + 1
	return s.first.Add(n * s.every)
}
