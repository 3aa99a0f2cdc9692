package scheduler

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-engine/internal/errors"
)

func noop(context.Context) error { return nil }

func TestOnceAt_Next(t *testing.T) {
	at := time.Date(2026, 5, 10, 12, 30, 0, 0, time.Local)
	s := &onceAt{at: at}
	assert.Equal(t, at, s.Next(at.Add(-time.Minute)))
	assert.True(t, s.Next(at).IsZero())

	late := &onceAt{at: at}
	now := at.Add(time.Second)
	assert.Equal(t, now, late.Next(now), "a passed moment fires immediately")
	assert.True(t, late.Next(now.Add(time.Second)).IsZero())
}

func TestStartingEvery_Next(t *testing.T) {
	first := time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local)
	s := startingEvery{first: first, every: 24 * time.Hour}

	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{"before first", first.Add(-time.Hour), first},
		{"at first", first, first.Add(24 * time.Hour)},
		{"between runs", first.Add(30 * time.Hour), first.Add(48 * time.Hour)},
		{"exactly on a later run", first.Add(48 * time.Hour), first.Add(72 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Next(tt.at))
		})
	}
}

func TestRegistry_Schedule(t *testing.T) {
	at := time.Now().Add(time.Hour)

	tests := []struct {
		name           string
		first          Job
		second         Job
		wantScheduled  bool
		wantTrigger    Trigger
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:          "replace supersedes the existing job",
			first:         Job{Key: "k", Policy: PolicyReplace, Trigger: Once(at), Run: noop},
			second:        Job{Key: "k", Policy: PolicyReplace, Trigger: Once(at.Add(time.Minute)), Run: noop},
			wantScheduled: true,
			wantTrigger:   Once(at.Add(time.Minute)),
		},
		{
			name:          "keep leaves the existing job",
			first:         Job{Key: "k", Policy: PolicyKeep, Trigger: Periodic(at, time.Hour), Run: noop},
			second:        Job{Key: "k", Policy: PolicyKeep, Trigger: Periodic(at.Add(time.Minute), time.Hour), Run: noop},
			wantScheduled: false,
			wantTrigger:   Periodic(at, time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()

			ok, err := r.Schedule(tt.first)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = r.Schedule(tt.second)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheduled, ok)

			assert.Equal(t, []string{"k"}, r.Keys())
			entry, found := r.Lookup("k")
			require.True(t, found)
			assert.Equal(t, tt.wantTrigger, entry.Trigger)
			assert.Len(t, r.cron.Entries(), 1)
		})
	}
}

func TestRegistry_ScheduleInvalid(t *testing.T) {
	r := NewRegistry()

	_, err := r.Schedule(Job{Run: noop})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	_, err = r.Schedule(Job{Key: "k"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Empty(t, r.Keys())
}

func TestRegistry_Cancel(t *testing.T) {
	r := NewRegistry()
	at := time.Now().Add(time.Hour)
	for _, key := range []string{"a", "b", "c"} {
		_, err := r.Schedule(Job{Key: key, Trigger: Once(at), Run: noop})
		require.NoError(t, err)
	}

	assert.True(t, r.Cancel("b"))
	assert.False(t, r.Cancel("b"))
	assert.Equal(t, []string{"a", "c"}, r.Keys())

	r.CancelAll()
	assert.Empty(t, r.Keys())
	assert.Empty(t, r.cron.Entries())
}

func TestRegistry_Execute(t *testing.T) {
	tests := []struct {
		name    string
		battery bool
		job     Job
		want    Result
	}{
		{
			name: "success",
			job:  Job{Key: "ok", Run: noop},
			want: ResultSuccess,
		},
		{
			name: "error maps to failure",
			job:  Job{Key: "err", Run: func(context.Context) error { return stderrors.New("store down") }},
			want: ResultFailure,
		},
		{
			name: "panic maps to failure",
			job:  Job{Key: "panic", Run: func(context.Context) error { panic("boom") }},
			want: ResultFailure,
		},
		{
			name:    "battery constraint skips",
			battery: true,
			job:     Job{Key: "sweep", RequiresBatteryNotLow: true, Run: func(context.Context) error { panic("must not run") }},
			want:    ResultSkipped,
		},
		{
			name:    "unconstrained job runs on low battery",
			battery: true,
			job:     Job{Key: "reminder", Run: noop},
			want:    ResultSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Result
			r := NewRegistry(
				WithDeviceState(StaticDevice(tt.battery)),
				WithResultHook(func(key string, result Result) { got = append(got, result) }),
			)

			assert.Equal(t, tt.want, r.Execute(context.Background(), tt.job))
			assert.Equal(t, []Result{tt.want}, got)
		})
	}
}

func TestRegistry_ExecuteTimeout(t *testing.T) {
	r := NewRegistry(WithJobTimeout(20 * time.Millisecond))

	result := r.Execute(context.Background(), Job{Key: "slow", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	assert.Equal(t, ResultFailure, result)
}

func TestRegistry_OneShotFiresOnceAndIsReleased(t *testing.T) {
	var (
		mu    sync.Mutex
		fired int
	)
	done := make(chan Result, 1)
	r := NewRegistry(WithResultHook(func(key string, result Result) { done <- result }))
	r.Start()
	defer func() { _ = r.Stop(context.Background()) }()

	_, err := r.Schedule(Job{
		Key:     "reminder_1",
		Trigger: Once(time.Now().Add(50 * time.Millisecond)),
		Run: func(context.Context) error {
			mu.Lock()
			fired++
			mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)

	select {
	case result := <-done:
		assert.Equal(t, ResultSuccess, result)
	case <-time.After(2 * time.Second):
		t.Fatal("one-shot job did not fire")
	}

	assert.Eventually(t, func() bool {
		_, ok := r.Lookup("reminder_1")
		return !ok
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fired)
}

func TestRegistry_OneShotInThePastFiresImmediately(t *testing.T) {
	done := make(chan Result, 1)
	r := NewRegistry(WithResultHook(func(key string, result Result) { done <- result }))
	r.Start()
	defer func() { _ = r.Stop(context.Background()) }()

	_, err := r.Schedule(Job{Key: "reminder_2", Trigger: Once(time.Now().Add(-time.Second)), Run: noop})
	require.NoError(t, err)

	select {
	case result := <-done:
		assert.Equal(t, ResultSuccess, result)
	case <-time.After(2 * time.Second):
		t.Fatal("overdue one-shot job did not fire")
	}
}

func TestRegistry_ReplacedJobDoesNotFire(t *testing.T) {
	fired := make(chan string, 2)
	r := NewRegistry()
	r.Start()
	defer func() { _ = r.Stop(context.Background()) }()

	job := func(name string) func(context.Context) error {
		return func(context.Context) error {
			fired <- name
			return nil
		}
	}

	_, err := r.Schedule(Job{Key: "k", Trigger: Once(time.Now().Add(50 * time.Millisecond)), Run: job("old")})
	require.NoError(t, err)
	_, err = r.Schedule(Job{Key: "k", Trigger: Once(time.Now().Add(100 * time.Millisecond)), Run: job("new")})
	require.NoError(t, err)

	select {
	case name := <-fired:
		assert.Equal(t, "new", name)
	case <-time.After(2 * time.Second):
		t.Fatal("replacement job did not fire")
	}

	select {
	case name := <-fired:
		t.Fatalf("unexpected second run: %s", name)
	case <-time.After(150 * time.Millisecond):
	}
}
